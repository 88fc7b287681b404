package port

import "github.com/mohitk58/apnadera-frontend/internal/core/domain"

// PropertyValidatorPort - клиентская проверка формы объявления до отправки.
type PropertyValidatorPort interface {
	ValidatePropertyInput(in domain.PropertyInput) error
}
