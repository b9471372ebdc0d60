package dummysvc

import (
	"context"
	"sync"

	"github.com/fineduca/backend/core/chat"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/profile"
)

// Service is the canned content provider used in tests and local development
// when no API key is configured. Errors can be injected to exercise failure
// paths.
type Service struct {
	mu  sync.Mutex
	err error
}

var (
	_ course.Generator       = (*Service)(nil)
	_ profile.ImageGenerator = (*Service)(nil)
	_ chat.Assistant         = (*Service)(nil)
)

func NewService() *Service {
	return &Service{}
}

// Fail makes all operations return err until cleared with nil.
func (svc *Service) Fail(err error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.err = err
}

func (svc *Service) failure() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.err
}

func (svc *Service) GenerateCourse(ctx context.Context, topic string, difficulty course.Difficulty) (course.GeneratedContent, error) {
	if err := svc.failure(); err != nil {
		return course.GeneratedContent{}, err
	}
	return course.GeneratedContent{
		Description: "Um curso introdutório sobre " + topic + ", com exemplos práticos do dia a dia.",
		Icon:        course.IconBudget,
		Difficulty:  difficulty,
		Lessons: []course.Lesson{
			{
				Title:   "Introdução a " + topic,
				Content: "Nesta lição você aprende os conceitos fundamentais de " + topic + ".",
				Quiz: []course.QuizQuestion{
					{
						Question:           "Qual é o primeiro passo para organizar suas finanças?",
						Options:            []string{"Registrar seus gastos", "Pedir um empréstimo", "Ignorar as contas", "Gastar mais"},
						CorrectAnswerIndex: 0,
					},
					{
						Question:           "Por que criar uma reserva de emergência?",
						Options:            []string{"Para gastar em promoções", "Para cobrir imprevistos", "Para impressionar amigos", "Não é necessária"},
						CorrectAnswerIndex: 1,
					},
					{
						Question:           "Com que frequência revisar o orçamento?",
						Options:            []string{"Nunca", "A cada década", "Regularmente", "Somente ao viajar"},
						CorrectAnswerIndex: 2,
					},
				},
			},
		},
	}, nil
}

func (svc *Service) Chat(ctx context.Context, history []chat.Message, message string) (string, error) {
	if err := svc.failure(); err != nil {
		return "", err
	}
	return "Olá! Sou o Edu 😊 Sobre \"" + message + "\": vamos começar pelo básico de educação financeira.", nil
}

// pngHeader is enough for callers that only base64-encode the bytes.
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func (svc *Service) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if err := svc.failure(); err != nil {
		return nil, err
	}
	return pngHeader, nil
}
