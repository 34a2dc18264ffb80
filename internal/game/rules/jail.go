package rules

import "fmt"

const (
	JailFine     = 50
	MaxJailTurns = 3
)

// JailEscapeMethod records how a player left jail.
type JailEscapeMethod string

const (
	EscapeNone      JailEscapeMethod = ""
	EscapePaidFine  JailEscapeMethod = "PAID_FINE"
	EscapeUsedCard  JailEscapeMethod = "USED_CARD"
	EscapeDoubles   JailEscapeMethod = "ROLLED_DOUBLES"
	EscapeForcedPay JailEscapeMethod = "FORCED_PAY"
)

// JailEscapeResult is the outcome of a jail action. Cost is what the
// player owes the bank; JailTurns is the counter after the attempt.
type JailEscapeResult struct {
	Escaped   bool
	Method    JailEscapeMethod
	Cost      int
	JailTurns int
	Message   string
}

func CanPayJailFine(player PlayerView) (bool, string) {
	if !player.InJail {
		return false, "not in jail"
	}
	if player.Cash < JailFine {
		return false, fmt.Sprintf("insufficient funds: fine is $%d, have $%d", JailFine, player.Cash)
	}
	return true, ""
}

func CanUseJailCard(player PlayerView) (bool, string) {
	if !player.InJail {
		return false, "not in jail"
	}
	if player.JailFreeCards <= 0 {
		return false, "no Get Out of Jail Free card"
	}
	return true, ""
}

func CanRollForDoubles(player PlayerView) (bool, string) {
	if !player.InJail {
		return false, "not in jail"
	}
	if player.JailTurns >= MaxJailTurns {
		return false, "maximum jail turns reached"
	}
	return true, ""
}

// PayJailFine settles the fine. The caller deducts Cost.
func PayJailFine(player PlayerView) (JailEscapeResult, error) {
	if ok, reason := CanPayJailFine(player); !ok {
		return JailEscapeResult{JailTurns: player.JailTurns, Message: reason}, fmt.Errorf("pay jail fine: %s", reason)
	}
	return JailEscapeResult{
		Escaped: true,
		Method:  EscapePaidFine,
		Cost:    JailFine,
		Message: fmt.Sprintf("paid $%d to leave jail", JailFine),
	}, nil
}

// UseJailCard spends one Get Out of Jail Free card. The caller decrements it.
func UseJailCard(player PlayerView) (JailEscapeResult, error) {
	if ok, reason := CanUseJailCard(player); !ok {
		return JailEscapeResult{JailTurns: player.JailTurns, Message: reason}, fmt.Errorf("use jail card: %s", reason)
	}
	return JailEscapeResult{
		Escaped: true,
		Method:  EscapeUsedCard,
		Message: "used Get Out of Jail Free card",
	}, nil
}

// RollForDoubles resolves a jail roll. Doubles free the player; the third
// failure forces the fine.
func RollForDoubles(player PlayerView, roll DiceRoll) JailEscapeResult {
	if roll.IsDoubles() {
		return JailEscapeResult{
			Escaped: true,
			Method:  EscapeDoubles,
			Message: fmt.Sprintf("rolled doubles (%s) and left jail", roll),
		}
	}
	if player.JailTurns >= MaxJailTurns-1 {
		return JailEscapeResult{
			Escaped: true,
			Method:  EscapeForcedPay,
			Cost:    JailFine,
			Message: fmt.Sprintf("third failed roll (%s); must pay $%d", roll, JailFine),
		}
	}
	turns := player.JailTurns + 1
	return JailEscapeResult{
		JailTurns: turns,
		Message:   fmt.Sprintf("no doubles (%s); %d of %d jail turns used", roll, turns, MaxJailTurns),
	}
}
