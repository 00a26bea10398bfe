package paycom

type Message struct {
	UZ string `json:"uz"`
	RU string `json:"ru"`
	EN string `json:"en"`
}

type Error struct {
	Code    int     `json:"code"`
	Message Message `json:"message"`
	Data    any     `json:"data"`
}

func (e Error) Error() string {
	return e.Message.EN
}

// WithData returns a copy of e carrying data, e.g. the name of the offending account field.
func (e Error) WithData(data any) Error {
	e.Data = data
	return e
}

const (
	CodeInvalidAmount       = -31001
	CodeTransactionNotFound = -31003
	CodeUnableToCancel      = -31007
	CodeUnableToPerform     = -31008
	CodeOrderNotFound       = -31050
	CodeOrderOnProcess      = -31099
	CodeInternal            = -32400
	CodeInsufficientRights  = -32504
	CodeParseError          = -32700
	CodeInvalidRequest      = -32600
	CodeMethodNotFound      = -32601
)

var (
	ErrInvalidAmount = Error{Code: CodeInvalidAmount, Message: Message{
		UZ: "Summa noto'g'ri",
		RU: "Неверная сумма",
		EN: "Invalid amount",
	}}

	ErrTransactionNotFound = Error{Code: CodeTransactionNotFound, Message: Message{
		UZ: "Tranzaksiya topilmadi",
		RU: "Транзакция не найдена",
		EN: "Transaction not found",
	}}

	ErrUnableToCancel = Error{Code: CodeUnableToCancel, Message: Message{
		UZ: "Tranzaksiyani bekor qilib bo'lmaydi",
		RU: "Невозможно отменить транзакцию",
		EN: "The transaction cannot be cancelled",
	}}

	ErrUnableToPerform = Error{Code: CodeUnableToPerform, Message: Message{
		UZ: "Ushbu operatsiyani bajarib bo'lmaydi",
		RU: "Невозможно выполнить данную операцию",
		EN: "Unable to perform operation",
	}}

	ErrOrderNotFound = Error{Code: CodeOrderNotFound, Message: Message{
		UZ: "Buyurtma topilmadi",
		RU: "Заказ не найден",
		EN: "Order not found",
	}}

	ErrOrderOnProcess = Error{Code: CodeOrderOnProcess, Message: Message{
		UZ: "Buyurtma to'lovi hozirda amalga oshirilmoqda",
		RU: "Платеж на этот заказ на данный момент в процессе",
		EN: "Payment for this order is currently on process",
	}}

	ErrInternal = Error{Code: CodeInternal, Message: Message{
		UZ: "Ichki server xatosi",
		RU: "Внутренняя ошибка сервера",
		EN: "Internal server error",
	}}

	ErrInsufficientRights = Error{Code: CodeInsufficientRights, Message: Message{
		UZ: "Ruxsat etilmagan",
		RU: "Недостаточно привилегий для выполнения метода",
		EN: "Insufficient privileges to perform this method",
	}}

	ErrParse = Error{Code: CodeParseError, Message: Message{
		UZ: "JSON so'rovni o'qib bo'lmadi",
		RU: "Ошибка парсинга JSON",
		EN: "Parse error",
	}}

	ErrInvalidRequest = Error{Code: CodeInvalidRequest, Message: Message{
		UZ: "So'rov parametrlari noto'g'ri",
		RU: "Неверные параметры запроса",
		EN: "Invalid request",
	}}

	ErrMethodNotFound = Error{Code: CodeMethodNotFound, Message: Message{
		UZ: "Metod topilmadi",
		RU: "Запрашиваемый метод не найден",
		EN: "Method not found",
	}}
)
