package messaging

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/KirkDiggler/focusbot/internal/common/random"
	"github.com/KirkDiggler/focusbot/internal/models"
)

const (
	// CompletionTitle is the title of the completion embed
	CompletionTitle = "Pomodoro Concluído"

	// StopTitle is the title of the stop embed
	StopTitle = "Pomodoro Parado"

	// GenericErrorMessage is shown for any unexpected failure
	GenericErrorMessage = "Ocorreu um erro ao executar esse comando!"
)

// service implements the Service interface
type service struct {
	random *random.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	source := cfg.Random
	if source == nil {
		source = random.New(nil)
	}

	return &service{random: source}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.ErrorType {
	case ErrorTypeDMOnly:
		if input.Command == "rank" {
			message = "Este comando só pode ser usado em mensagens diretas (DMs)!"
		} else {
			message = "Este comando só pode ser usado em DMs!"
		}
	case ErrorTypeInvalidDuration:
		message = "Duração inválida! Deve ser entre 1 e 120 minutos."
	case ErrorTypeInvalidFocus:
		message = "Informe no que você vai focar!"
	case ErrorTypeNotOwner:
		message = "Somente você pode controlar este Pomodoro!"
	case ErrorTypeStalePanel:
		message = "Este painel não está mais ativo. Use /pomodoro para abrir o painel atual."
	default:
		message = GenericErrorMessage
	}

	return &GetErrorMessageOutput{Message: message}, nil
}

// GetStatusMessage returns a random encouragement matching the session state
func (s *service) GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case input.State.IsActive() && input.Percent >= 75:
		messages = []string{
			"Reta final! Não pare agora.",
			"Falta pouco, segure firme!",
			"Quase lá, mantenha o ritmo.",
		}
	case input.State.IsActive():
		messages = []string{
			"Foco total! Notificações podem esperar.",
			"Um passo de cada vez.",
			"Você está indo bem, continue.",
			"Concentração é um músculo. Treine-o!",
		}
	case input.State.IsPaused():
		messages = []string{
			"Respire fundo e volte quando estiver pronto.",
			"Pausa rápida. Um copo d'água cai bem!",
			"O timer espera por você.",
		}
	default:
		messages = []string{
			"Clique em Iniciar quando estiver pronto.",
			"Prepare o ambiente e comece quando quiser.",
			"Tudo pronto para começar!",
		}
	}

	return &GetStatusMessageOutput{Message: random.Pick(s.random, messages)}, nil
}

// GetCompletionMessage returns the completion embed text
func (s *service) GetCompletionMessage(ctx context.Context, input *GetCompletionMessageInput) (*GetCompletionMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := fmt.Sprintf("Você completou seu Pomodoro focado em \"%s\"!\n\n**Motivação:** %s", input.Focus, input.Quote)

	if input.Bonus > 0 {
		message += fmt.Sprintf("\n🎉 Parabéns! Você ganhou **%d pontos**.", input.Bonus)
	} else if remaining := input.CompletionsPerBonus - input.PendingCompletions; input.CompletionsPerBonus > 0 && remaining > 0 {
		nudges := []string{
			"\nMais %d Pomodoro(s) para ganhar pontos!",
			"\nFaltam %d Pomodoro(s) para a próxima recompensa.",
			"\nContinue assim: %d Pomodoro(s) até os próximos pontos.",
		}
		message += fmt.Sprintf(random.Pick(s.random, nudges), remaining)
	}

	return &GetCompletionMessageOutput{
		Title:   CompletionTitle,
		Message: message,
	}, nil
}

// GetStopMessage returns the stop embed text
func (s *service) GetStopMessage(ctx context.Context, input *GetStopMessageInput) (*GetStopMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetStopMessageOutput{
		Title:   StopTitle,
		Message: fmt.Sprintf("Seu Pomodoro foi interrompido.\n\n**Motivação:** %s", input.Quote),
	}, nil
}

// GetPointsMessage returns the reply for a points command or credit
func (s *service) GetPointsMessage(ctx context.Context, input *GetPointsMessageInput) (*GetPointsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Type {
	case PointsMessageBalance:
		return &GetPointsMessageOutput{
			Message: fmt.Sprintf("🏅 Você tem **%d pontos** acumulados.", input.TotalPoints),
		}, nil
	case PointsMessageCredit:
		return &GetPointsMessageOutput{
			Message: fmt.Sprintf("🎉 Você ganhou **%d pontos**! Total: **%d pontos**.", input.Amount, input.TotalPoints),
		}, nil
	default:
		return nil, errors.Errorf("unknown points message type %q", input.Type)
	}
}

// StatusLabel names a session state for display
func StatusLabel(state models.SessionState) string {
	switch {
	case state.IsActive():
		return "Ativo"
	case state.IsPaused():
		return "Pausado"
	default:
		return "Inativo"
	}
}
