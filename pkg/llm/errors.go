package llm

import "fmt"

// Типизированные ошибки провайдеров.
//
// Провайдеры возвращают их вместо голых fmt.Errorf, чтобы вызывающий код
// мог различить сбой доставки и сбой разбора через errors.As и показать
// пользователю осмысленное сообщение.

// RequestError — сбой доставки запроса: сетевая ошибка, таймаут или
// статус ответа, отличный от 200.
type RequestError struct {
	StatusCode int   // 0, если ответ не получен вовсе
	Cause      error // Первопричина
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// DataError — ответ получен, но данные не разбираются: невалидный JSON
// или отсутствующий choices.
type DataError struct {
	Cause error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("bad response data: %v", e.Cause)
}

func (e *DataError) Unwrap() error {
	return e.Cause
}
