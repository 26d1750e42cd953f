package paymentgateway

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrRefundFailed платежный шлюз отклонил или не выполнил возврат
	ErrRefundFailed = fmt.Errorf("paymentgateway: refund failed: %w", domain.ErrPaymentGateway)

	// ErrInvalidRefund некорректные параметры возврата (пустая ссылка на платеж, сумма <= 0)
	ErrInvalidRefund = fmt.Errorf("paymentgateway: invalid refund request: %w", domain.ErrPaymentGateway)
)
