package persist

import (
	"github.com/verdant-games/gardensim/internal/result"
)

// Step is one unit of a transaction: an apply function that may refuse with
// messages, and an optional rollback that undoes a successful apply.
type Step struct {
	Name     string
	Apply    func() result.Result[struct{}]
	Rollback func()
}

// RunTransaction applies steps in order. The first refusal rolls back every
// step already applied, newest first, and the refusal's messages are
// returned. All-or-nothing: after a failure the world looks untouched.
func RunTransaction(steps ...Step) result.Result[struct{}] {
	applied := make([]Step, 0, len(steps))
	for _, step := range steps {
		res := step.Apply()
		if !res.Successful() {
			for i := len(applied) - 1; i >= 0; i-- {
				if applied[i].Rollback != nil {
					applied[i].Rollback()
				}
			}
			return res
		}
		applied = append(applied, step)
	}
	return result.Ok(struct{}{})
}
