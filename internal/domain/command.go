package domain

import "encoding/json"

// InternalCommand - оптимизированная команда для движка.
// Использует InputAction вместо string.
type InternalCommand struct {
	Action  InputAction     // Число! Быстро и безопасно.
	Token   string          // ID сессии клиента
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
