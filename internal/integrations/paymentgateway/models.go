package paymentgateway

// Refund результат возврата средств
type Refund struct {
	ID     string
	Amount float64
	Status string
}
