package memory

import (
	"sync"

	participantRepo "wayfare/database/repository/participant"
	"wayfare/models"
)

// ParticipantRepo is the in-memory ParticipantRepository.
type ParticipantRepo struct {
	mu           sync.Mutex
	participants map[string]*models.Participant
}

// NewParticipantRepo creates an empty in-memory participant store.
func NewParticipantRepo() *ParticipantRepo {
	return &ParticipantRepo{participants: make(map[string]*models.Participant)}
}

// Seed stores a participant directly, for tests.
func (r *ParticipantRepo) Seed(participant models.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := participant
	r.participants[p.ID] = &p
}

func (r *ParticipantRepo) Create(participant *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.Email == participant.Email {
			return participantRepo.ErrExists
		}
	}
	p := *participant
	r.participants[p.ID] = &p
	return nil
}

func (r *ParticipantRepo) GetByID(id string) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, participantRepo.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *ParticipantRepo) GetByEmail(email string) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.Email == email {
			out := *p
			return &out, nil
		}
	}
	return nil, participantRepo.ErrNotFound
}

func (r *ParticipantRepo) Trust(id string) (models.Trust, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return models.Trust{}, err
	}
	return p.Trust, nil
}

func (r *ParticipantRepo) DeviceTokens(id string) ([]string, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	return p.DeviceTokens, nil
}
