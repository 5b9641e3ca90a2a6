package logx

import "go.uber.org/zap"

// Info пишет событие обработчика с req_id и op.
func Info(l *zap.Logger, reqID, op, msg string, fields ...zap.Field) {
	l.Info(msg, append([]zap.Field{zap.String("req_id", reqID), zap.String("op", op)}, fields...)...)
}

// Error — то же для ошибок, err пишется в поле error.
func Error(l *zap.Logger, reqID, op, msg string, err error, fields ...zap.Field) {
	l.Error(msg, append([]zap.Field{zap.String("req_id", reqID), zap.String("op", op), zap.Error(err)}, fields...)...)
}
