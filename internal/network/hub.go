package network

import (
	"sync"

	"photocrop-server/pkg/api"
)

const clientBuffer = 100

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: токен клиента -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал клиента. Старый канал с тем же токеном закрывается.
func (b *Broadcaster) Register(token string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[token]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, clientBuffer)
	b.subscribers[token] = ch
	return ch
}

// Unregister удаляет подписчика, если ch все еще его текущий канал
func (b *Broadcaster) Unregister(token string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[token]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, token)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(token string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[token]; ok {
		select {
		case ch <- msg:
		default:
			// Медленный клиент теряет сообщение
		}
	}
}

// Broadcast отправляет всем (игрок и зрители)
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[token]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
