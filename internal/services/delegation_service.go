package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
)

var (
	ErrContentRequired = errors.New("task content is required")
	ErrLeadRequired    = errors.New("a lead must be selected")
)

// ParseRank extracts the numeric part of a delegate-level token, e.g.
// "X2" parses to 2. A token with no digits parses to the unranked
// sentinel, which is lower priority than any real rank, so a malformed
// level can never out-rank a well-formed one.
func ParseRank(delegateLevel string) int {
	var digits strings.Builder
	for _, r := range delegateLevel {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return constants.UnrankedLevel
	}

	rank, err := strconv.Atoi(digits.String())
	if err != nil {
		return constants.UnrankedLevel
	}
	return rank
}

// DelegationService decides who may receive delegated tasks and creates
// the delegated tasks themselves.
type DelegationService struct {
	users repository.UserRepository
	tasks *TaskService
}

// NewDelegationService creates a new DelegationService.
func NewDelegationService(users repository.UserRepository, tasks *TaskService) *DelegationService {
	return &DelegationService{users: users, tasks: tasks}
}

// Units returns every distinct unit in the directory, in order of first
// appearance.
func (s *DelegationService) Units() []string {
	seen := make(map[string]struct{})
	var units []string

	for _, u := range s.users.All() {
		if _, ok := seen[u.Unit]; ok {
			continue
		}
		seen[u.Unit] = struct{}{}
		units = append(units, u.Unit)
	}
	return units
}

// EligibleTargets returns the users in the requested unit that the actor
// may delegate to: strictly lower authority, meaning a strictly greater
// parsed rank. Peers are never eligible.
func (s *DelegationService) EligibleTargets(actor models.User, unit string) []models.User {
	actorRank := ParseRank(actor.DelegateLevel)

	var targets []models.User
	for _, u := range s.users.All() {
		if u.Unit == unit && ParseRank(u.DelegateLevel) > actorRank {
			targets = append(targets, u)
		}
	}
	return targets
}

// AssignInput carries a delegation request.
type AssignInput struct {
	Content         string
	Complexity      models.TaskComplexity
	LeadID          string
	CollaboratorIDs []string
}

// Assign creates a delegated task. The lead is set explicitly rather
// than defaulting to the actor, and the task's unit is the actor's own
// unit: the unit field records who assigned the work, not where it
// landed. Eligibility of the lead is not re-checked here; the targets
// listing is the gate, as in the selection form it backs.
func (s *DelegationService) Assign(actor models.User, input AssignInput) (models.Task, error) {
	if strings.TrimSpace(input.Content) == "" {
		return models.Task{}, ErrContentRequired
	}
	if input.LeadID == "" {
		return models.Task{}, ErrLeadRequired
	}

	return s.tasks.Create(CreateTaskInput{
		Actor:           actor,
		Content:         input.Content,
		Complexity:      input.Complexity,
		LeadID:          input.LeadID,
		CollaboratorIDs: input.CollaboratorIDs,
	}), nil
}
