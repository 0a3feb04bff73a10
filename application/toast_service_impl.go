package application

import (
	"context"
	"errors"
	"fmt"

	"toastd/domain/contracts"
	"toastd/domain/toasts"
	"toastd/logging"
)

// ToastServiceImpl implements ToastService over a toasts.Manager.
type ToastServiceImpl struct {
	manager  *toasts.Manager
	defaults toasts.Defaults
	history  contracts.ToastHistoryRepository
	logger   *logging.Logger
}

// NewToastService creates a new toast service. history may be nil.
func NewToastService(
	manager *toasts.Manager,
	defaults toasts.Defaults,
	history contracts.ToastHistoryRepository,
) ToastService {
	return &ToastServiceImpl{
		manager:  manager,
		defaults: defaults,
		history:  history,
		logger:   logging.Default().WithComponent("toast_service"),
	}
}

func (s *ToastServiceImpl) Spawn(req toasts.Request) toasts.Instance {
	return s.manager.Spawn(req)
}

// SpawnFromAttributes spawns a toast described by trigger attributes,
// falling back to the configured defaults.
func (s *ToastServiceImpl) SpawnFromAttributes(attrs map[string]string) toasts.Instance {
	return s.manager.Spawn(toasts.RequestFromAttributes(attrs, s.defaults))
}

func (s *ToastServiceImpl) Defaults() toasts.Defaults {
	return s.defaults
}

func (s *ToastServiceImpl) Pause(id toasts.ID) (toasts.Instance, error) {
	return s.apply(id, s.manager.Pause)
}

func (s *ToastServiceImpl) Resume(id toasts.ID) (toasts.Instance, error) {
	return s.apply(id, s.manager.Resume)
}

func (s *ToastServiceImpl) Dismiss(id toasts.ID) (toasts.Instance, error) {
	return s.apply(id, s.manager.Dismiss)
}

// Signal routes an interaction reported by a client to the manager.
func (s *ToastServiceImpl) Signal(id toasts.ID, signal toasts.Signal) error {
	if !signal.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSignal, signal)
	}
	if _, ok := s.manager.Get(id); !ok {
		return ErrToastNotFound
	}
	s.manager.HandleSignal(id, signal)
	return nil
}

func (s *ToastServiceImpl) Get(id toasts.ID) (toasts.Instance, bool) {
	return s.manager.Get(id)
}

func (s *ToastServiceImpl) Active() []toasts.Instance {
	return s.manager.Active()
}

func (s *ToastServiceImpl) Positions() []toasts.Position {
	return s.manager.Positions()
}

func (s *ToastServiceImpl) History(ctx context.Context, limit int) ([]*toasts.HistoryEntry, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load toast history: %w", err)
	}
	return entries, nil
}

func (s *ToastServiceImpl) ToastHistory(ctx context.Context, id toasts.ID) ([]*toasts.HistoryEntry, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	entries, err := s.history.ForToast(ctx, id)
	if errors.Is(err, contracts.ErrNotFound) {
		return nil, ErrToastNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load toast history: %w", err)
	}
	return entries, nil
}

func (s *ToastServiceImpl) apply(id toasts.ID, op func(toasts.ID)) (toasts.Instance, error) {
	if _, ok := s.manager.Get(id); !ok {
		s.logger.Toast("Toast operation on unknown id", string(id))
		return toasts.Instance{}, ErrToastNotFound
	}
	op(id)
	inst, ok := s.manager.Get(id)
	if !ok {
		return toasts.Instance{}, ErrToastNotFound
	}
	return inst, nil
}
