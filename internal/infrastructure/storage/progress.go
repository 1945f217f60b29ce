package storage

import (
	"fmt"
	"sync"

	"photocrop-server/internal/domain"
	"photocrop-server/pkg/logger"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const progressObject = "progress"

// ProgressStore хранит выполненные цели по уровням.
// Без gdata-менеджера работает в памяти (ничего не переживает перезапуск).
type ProgressStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	memory  map[string]domain.LevelProgress
}

// OpenProgressStore открывает хранилище приложения appName.
func OpenProgressStore(appName string) (*ProgressStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}
	return NewProgressStore(manager), nil
}

// NewProgressStore оборачивает менеджер. manager может быть nil.
func NewProgressStore(manager *gdata.Manager) *ProgressStore {
	return &ProgressStore{
		manager: manager,
		memory:  make(map[string]domain.LevelProgress),
	}
}

func progressKey(world domain.World, number int) string {
	return fmt.Sprintf("%s_%02d", world.String(), number)
}

// Load возвращает прогресс уровня. Нет записи - пустой прогресс.
func (s *ProgressStore) Load(world domain.World, number int) (domain.LevelProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(world, number)
}

func (s *ProgressStore) load(world domain.World, number int) (domain.LevelProgress, error) {
	empty := domain.LevelProgress{World: world, LevelNumber: number}
	key := progressKey(world, number)

	if s.manager == nil {
		if p, ok := s.memory[key]; ok {
			return p, nil
		}
		return empty, nil
	}

	if !s.manager.ObjectPropExists(progressObject, key) {
		return empty, nil
	}
	data, err := s.manager.LoadObjectProp(progressObject, key)
	if err != nil {
		return empty, fmt.Errorf("failed to load progress %s: %w", key, err)
	}

	var p domain.LevelProgress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return empty, fmt.Errorf("failed to unmarshal progress %s: %w", key, err)
	}
	return p, nil
}

// Save перезаписывает прогресс уровня.
func (s *ProgressStore) Save(p domain.LevelProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p)
}

func (s *ProgressStore) save(p domain.LevelProgress) error {
	key := progressKey(p.World, p.LevelNumber)

	if s.manager == nil {
		s.memory[key] = p
		return nil
	}

	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(progressObject, key, data); err != nil {
		return fmt.Errorf("failed to save progress %s: %w", key, err)
	}
	return nil
}

// Record добавляет выполненные цели итога к сохраненным. Старые цели не теряются.
func (s *ProgressStore) Record(result domain.LevelResult) (domain.LevelProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(result.World, result.LevelNumber)
	if err != nil {
		logger.For("progress").WithError(err).Warn("Stored progress is unreadable, starting over")
		p = domain.LevelProgress{World: result.World, LevelNumber: result.LevelNumber}
	}
	p.Merge(result.CompletedGoals())

	if err := s.save(p); err != nil {
		return p, err
	}
	return p, nil
}
