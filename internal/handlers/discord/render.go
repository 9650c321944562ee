package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/services/messaging"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
)

const (
	panelTitle     = "Painel Pomodoro"
	progressCells  = 20
	maxQuoteLength = 200

	colorCompleted = 0x00FF00
	colorStopped   = 0xFF0000
)

// renderPanelEmbed renders the session panel
func renderPanelEmbed(n *pomodoro.Notification, footer string, now time.Time) *discordgo.MessageEmbed {
	session := n.Session
	p := n.Progress

	embed := &discordgo.MessageEmbed{
		Title:       panelTitle,
		Description: fmt.Sprintf("**Foco:** %s\n**Duração:** %d minutos", session.Focus, session.DurationMinutes),
		Color:       panelColor(p.Percent),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Motivação", Value: truncateQuote(n.Quote)},
			{Name: "Progresso", Value: "```" + progressBar(p.Percent) + "```"},
			{Name: "Completado", Value: fmt.Sprintf("%d%% (%d min)", p.Percent, p.MinutesCompleted), Inline: true},
			{Name: "Restante", Value: fmt.Sprintf("%d min", p.MinutesRemaining), Inline: true},
			{Name: "Estado", Value: messaging.StatusLabel(session.State), Inline: true},
		},
		Timestamp: now.Format(time.RFC3339),
	}

	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}

	return embed
}

// renderPanelComponents renders the control buttons for a session
func renderPanelComponents(session *models.Session) []discordgo.MessageComponent {
	pauseLabel := "Pausar"
	if session.State.IsPaused() {
		pauseLabel = "Retomar"
	}

	id := func(action string) string {
		return ButtonID{Action: action, OwnerID: session.UserID, SessionID: session.ID}.String()
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Iniciar",
					Style:    discordgo.SuccessButton,
					CustomID: id(ButtonStart),
					Disabled: session.State.IsActive(),
				},
				discordgo.Button{
					Label:    pauseLabel,
					Style:    discordgo.SecondaryButton,
					CustomID: id(ButtonPause),
					Disabled: session.State.IsInactive(),
				},
				discordgo.Button{
					Label:    "Parar",
					Style:    discordgo.DangerButton,
					CustomID: id(ButtonStop),
					Disabled: session.State.IsInactive(),
				},
			},
		},
	}
}

// renderResultEmbed renders the completion and stop embeds
func renderResultEmbed(title, description string, color int, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   now.Format(time.RFC3339),
	}
}

// renderPomodoroModal renders the form asking for focus and duration
func renderPomodoroModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: ModalPomodoro,
		Title:    "Novo Pomodoro",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    ModalInputFocus,
						Label:       "No que você vai focar?",
						Style:       discordgo.TextInputShort,
						Placeholder: "Ex: estudar matemática",
						Required:    true,
						MaxLength:   100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    ModalInputDuration,
						Label:       "Duração (minutos, 1-120)",
						Style:       discordgo.TextInputShort,
						Placeholder: "25",
						Required:    true,
						MaxLength:   3,
					},
				},
			},
		},
	}
}

// renderLeaderboard renders the top-N list
func renderLeaderboard(size int, entries []*models.LeaderboardEntry) string {
	lines := make([]string, 0, len(entries))
	for idx, entry := range entries {
		lines = append(lines, fmt.Sprintf("#%d <@%s> - %d pontos", idx+1, entry.UserID, entry.Points))
	}

	return fmt.Sprintf("🏆 **Top %d Usuários** 🏆\n\n%s", size, strings.Join(lines, "\n"))
}

// progressBar draws percent as a fixed-width bar
func progressBar(percent int) string {
	percent = clampPercent(percent)
	filled := int(float64(percent)/100*progressCells + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressCells-filled)
}

// panelColor fades from red at 0% to green at 100%
func panelColor(percent int) int {
	percent = clampPercent(percent)
	red := 255 * (100 - percent) / 100
	green := 255 * percent / 100
	return red<<16 | green<<8
}

// truncateQuote shortens long quotes at the last word boundary
func truncateQuote(quote string) string {
	runes := []rune(quote)
	if len(runes) <= maxQuoteLength {
		return quote
	}

	// a space right after the limit still counts as a boundary
	window := string(runes[:maxQuoteLength+1])
	if idx := strings.LastIndex(window, " "); idx > 0 {
		return window[:idx] + "..."
	}

	return string(runes[:maxQuoteLength]) + "..."
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
