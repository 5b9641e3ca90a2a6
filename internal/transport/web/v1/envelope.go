package v1

// Envelope — общий конверт ответов JSON API. Ошибка и данные взаимоисключающие.
type Envelope struct {
	Error    *ErrorBody `json:"error,omitempty"`
	Response any        `json:"response,omitempty"`
	Data     any        `json:"data,omitempty"`
	ReqID    string     `json:"req_id,omitempty"`
}

type ErrorBody struct {
	Code int    `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

func okResponse(resp any) Envelope { return Envelope{Response: resp} }
func okData(data any) Envelope     { return Envelope{Data: data} }

func fail(code int, text string) Envelope {
	return Envelope{Error: &ErrorBody{Code: code, Text: text}}
}
