package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemchat/internal/chat"
)

// ActionPoller resolves exactly one action per poll. It races three sources:
// a legal parsed message from the acting player, an automated player's
// decision, and the countdown's expiry (which defaults to check when legal,
// else fold). The countdown message is re-rendered once per second and the
// ticker is torn down as soon as any source wins.
type ActionPoller struct {
	logger         *log.Logger
	clock          quartz.Clock
	channel        chat.Channel
	messages       <-chan chat.Message
	timeoutSeconds int
}

// NewActionPoller creates a poller over the game's inbound message stream
func NewActionPoller(logger *log.Logger, clock quartz.Clock, channel chat.Channel, messages <-chan chat.Message, timeoutSeconds int) *ActionPoller {
	return &ActionPoller{
		logger:         logger.WithPrefix("poller"),
		clock:          clock,
		channel:        channel,
		messages:       messages,
		timeoutSeconds: timeoutSeconds,
	}
}

// AvailableActions computes the legal action set for a player facing the
// given bet. Fold is always legal. The unraised big blind holds the option:
// they may check or raise even though a bet technically exists.
func AvailableActions(player *Player, currentBet int) []ActionName {
	if player.HasOption {
		return []ActionName{ActionCheck, ActionRaise, ActionFold}
	}
	if currentBet > 0 {
		return []ActionName{ActionCall, ActionRaise, ActionFold}
	}
	return []ActionName{ActionCheck, ActionBet, ActionFold}
}

// GetActionForPlayer blocks until one action is resolved for the player.
// Illegal or unparseable chat input is ignored, never treated as the
// resolved action. Automated players decide immediately, skipping the
// countdown entirely.
func (ap *ActionPoller) GetActionForPlayer(ctx context.Context, player *Player, currentBet int, previous []Action) Action {
	available := AvailableActions(player, currentBet)

	if player.Automated != nil {
		action := ap.legalize(player.Automated.GetAction(available, previous), available)
		ap.announce(player, action)
		return action
	}

	ap.channel.Send(fmt.Sprintf("%s, it's your turn to act.", player.Name))
	countdown := ap.channel.Send(ap.prompt(available, ap.timeoutSeconds))

	ticker := ap.clock.NewTicker(time.Second, "countdown")
	defer ticker.Stop()

	remaining := ap.timeoutSeconds
	for {
		select {
		case <-ctx.Done():
			return ap.timeoutAction(player, available)

		case msg, ok := <-ap.messages:
			if !ok {
				// Stream gone; resolve as a timeout would.
				return ap.timeoutAction(player, available)
			}
			if msg.SenderID != player.ID {
				continue
			}
			action, parsed := ParseAction(msg.Text)
			if !parsed {
				ap.logger.Debug("ignoring unparseable input", "player", player.Name, "text", msg.Text)
				continue
			}
			if !actionAvailable(action.Name, available) {
				ap.logger.Debug("ignoring illegal action", "player", player.Name, "action", action.Name)
				continue
			}
			ap.announce(player, action)
			return action

		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				return ap.timeoutAction(player, available)
			}
			countdown.Update(ap.prompt(available, remaining))
		}
	}
}

// timeoutAction is the forced action when the countdown expires: check when
// legal, fold otherwise. This is normal control flow, not an error.
func (ap *ActionPoller) timeoutAction(player *Player, available []ActionName) Action {
	action := Action{Name: ActionFold}
	if actionAvailable(ActionCheck, available) {
		action = Action{Name: ActionCheck}
	}
	ap.logger.Info("action timed out", "player", player.Name, "default", action.Name)
	ap.announce(player, action)
	return action
}

// legalize coerces an automated decision into the legal set. Bots tend to
// say "bet" when only "raise" is legal and vice versa; anything else
// degrades to the timeout default.
func (ap *ActionPoller) legalize(action Action, available []ActionName) Action {
	if actionAvailable(action.Name, available) {
		return action
	}
	switch {
	case action.Name == ActionBet && actionAvailable(ActionRaise, available):
		action.Name = ActionRaise
		return action
	case action.Name == ActionRaise && actionAvailable(ActionBet, available):
		action.Name = ActionBet
		return action
	case action.Name == ActionCheck && actionAvailable(ActionCall, available):
		action.Name = ActionCall
		return action
	case actionAvailable(ActionCheck, available):
		return Action{Name: ActionCheck}
	default:
		return Action{Name: ActionFold}
	}
}

func (ap *ActionPoller) announce(player *Player, action Action) {
	ap.channel.Send(fmt.Sprintf("%s %s.", player.Name, action))
}

func (ap *ActionPoller) prompt(available []ActionName, remaining int) string {
	labels := make([]string, len(available))
	for i, name := range available {
		switch name {
		case ActionCheck:
			labels[i] = "(C)heck"
		case ActionCall:
			labels[i] = "Call"
		case ActionBet:
			labels[i] = "(B)et"
		case ActionRaise:
			labels[i] = "(R)aise"
		case ActionFold:
			labels[i] = "(F)old"
		}
	}
	return fmt.Sprintf("Respond with %s in the next %d seconds.", strings.Join(labels, ", "), remaining)
}

func actionAvailable(name ActionName, available []ActionName) bool {
	for _, a := range available {
		if a == name {
			return true
		}
	}
	return false
}
