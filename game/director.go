package game

import "github.com/sirupsen/logrus"

// A Director plays a session on the player's behalf
type Director interface {
	// Init binds the director to the session it will play
	Init(*Session)

	// Act performs a single reveal, flag or chord. It returns false when
	// the director has no move to offer.
	Act() bool
}

// Autoplay lets director act until the session ends, the director gives
// up, or maxActions moves have been made. maxActions <= 0 means no limit.
func Autoplay(session *Session, director Director, maxActions int) Outcome {
	director.Init(session)

	for numActions := 0; session.outcome == InProgress; numActions++ {
		if maxActions > 0 && numActions >= maxActions {
			Log.WithField("maxActions", maxActions).Debug("autoplay hit action limit")
			break
		}
		if !director.Act() {
			Log.WithFields(logrus.Fields{
				"actions": session.actionCount,
			}).Debug("director has no move")
			break
		}
	}
	return session.outcome
}
