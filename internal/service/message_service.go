package service

import (
	"context"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

// MessageService records and lists contact submissions.
type MessageService interface {
	Create(ctx context.Context, msg *domain.Message) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
}

func NewMessageService(messages repository.MessageRepository) MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) Create(ctx context.Context, msg *domain.Message) error {
	_, err := s.messages.Create(ctx, msg)
	return err
}

func (s *messageService) Count(ctx context.Context) (int, error) {
	return s.messages.Count(ctx)
}

func (s *messageService) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	return s.messages.List(ctx, limit, offset)
}
