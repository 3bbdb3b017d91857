package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
)

// In-memory store fakes backing the service tests.

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileStore struct {
	nextID   int64
	profiles map[int64]*models.StudentProfile // keyed by user ID
	creates  int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]*models.StudentProfile{}}
}

func (s *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *fakeProfileStore) GetOrCreate(_ context.Context, userID int64) (*models.StudentProfile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	s.nextID++
	s.creates++
	profile := &models.StudentProfile{ID: s.nextID, UserID: userID}
	s.profiles[userID] = profile
	return profile, nil
}

func (s *fakeProfileStore) Update(_ context.Context, profile *models.StudentProfile) error {
	stored, ok := s.profiles[profile.UserID]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	stored.Skills = profile.Skills
	stored.EnrolledSubjects = profile.EnrolledSubjects
	return nil
}

type fakeOpportunityStore struct {
	nextID        int64
	opportunities []*models.Opportunity
}

func newFakeOpportunityStore() *fakeOpportunityStore {
	return &fakeOpportunityStore{}
}

func (s *fakeOpportunityStore) Create(_ context.Context, opp *models.Opportunity) error {
	s.nextID++
	opp.ID = s.nextID
	opp.CreatedAt = time.Now()
	s.opportunities = append(s.opportunities, opp)
	return nil
}

func (s *fakeOpportunityStore) GetByID(_ context.Context, id int64) (*models.Opportunity, error) {
	for _, opp := range s.opportunities {
		if opp.ID == id {
			return opp, nil
		}
	}
	return nil, apperrors.ErrOpportunityNotFound
}

func (s *fakeOpportunityStore) GetOwned(_ context.Context, id, lecturerID int64) (*models.Opportunity, error) {
	for _, opp := range s.opportunities {
		if opp.ID == id && opp.PostedBy != nil && *opp.PostedBy == lecturerID {
			return opp, nil
		}
	}
	return nil, apperrors.ErrOpportunityNotFound
}

func (s *fakeOpportunityStore) Search(_ context.Context, query string, sortMode models.OpportunitySort, limit uint64) ([]*models.Opportunity, error) {
	query = strings.ToLower(query)

	var out []*models.Opportunity
	for _, opp := range s.opportunities {
		if query == "" ||
			strings.Contains(strings.ToLower(opp.Company), query) ||
			strings.Contains(strings.ToLower(opp.RoleTitle), query) ||
			strings.Contains(strings.ToLower(opp.Description), query) {
			out = append(out, opp)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if sortMode == models.SortNewest {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Deadline.Before(out[j].Deadline)
	})

	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeOpportunityStore) ListByLecturer(_ context.Context, lecturerID int64) ([]*models.Opportunity, error) {
	var out []*models.Opportunity
	for _, opp := range s.opportunities {
		if opp.PostedBy != nil && *opp.PostedBy == lecturerID {
			out = append(out, opp)
		}
	}
	return out, nil
}

func (s *fakeOpportunityStore) UpdateOwned(ctx context.Context, opp *models.Opportunity, lecturerID int64) error {
	stored, err := s.GetOwned(ctx, opp.ID, lecturerID)
	if err != nil {
		return err
	}
	stored.Company = opp.Company
	stored.RoleTitle = opp.RoleTitle
	stored.Deadline = opp.Deadline
	stored.Link = opp.Link
	stored.Description = opp.Description
	return nil
}

func (s *fakeOpportunityStore) DeleteOwned(_ context.Context, id, lecturerID int64) error {
	for i, opp := range s.opportunities {
		if opp.ID == id && opp.PostedBy != nil && *opp.PostedBy == lecturerID {
			s.opportunities = append(s.opportunities[:i], s.opportunities[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrOpportunityNotFound
}

type savedKey struct {
	studentID     int64
	opportunityID int64
}

type fakeSaveStore struct {
	nextID int64
	saved  map[savedKey]*models.SavedOpportunity
}

func newFakeSaveStore() *fakeSaveStore {
	return &fakeSaveStore{saved: map[savedKey]*models.SavedOpportunity{}}
}

func (s *fakeSaveStore) IsSaved(_ context.Context, studentID, opportunityID int64) (bool, error) {
	_, ok := s.saved[savedKey{studentID, opportunityID}]
	return ok, nil
}

func (s *fakeSaveStore) Create(_ context.Context, record *models.SavedOpportunity) error {
	key := savedKey{record.StudentID, record.OpportunityID}
	if _, ok := s.saved[key]; ok {
		return apperrors.ErrAlreadySaved
	}
	s.nextID++
	record.ID = s.nextID
	record.SavedAt = time.Now()
	s.saved[key] = record
	return nil
}

func (s *fakeSaveStore) Delete(_ context.Context, studentID, opportunityID int64) error {
	key := savedKey{studentID, opportunityID}
	if _, ok := s.saved[key]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(s.saved, key)
	return nil
}

type fakeApplicationStore struct {
	nextID       int64
	applications []*models.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{}
}

func (s *fakeApplicationStore) Exists(_ context.Context, studentID, opportunityID int64) (bool, error) {
	for _, app := range s.applications {
		if app.StudentID == studentID && app.OpportunityID == opportunityID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeApplicationStore) Create(ctx context.Context, app *models.Application) error {
	exists, _ := s.Exists(ctx, app.StudentID, app.OpportunityID)
	if exists {
		return apperrors.ErrAlreadyApplied
	}
	s.nextID++
	app.ID = s.nextID
	app.AppliedAt = time.Now()
	s.applications = append(s.applications, app)
	return nil
}

func (s *fakeApplicationStore) ListByOpportunity(_ context.Context, opportunityID int64) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range s.applications {
		if app.OpportunityID == opportunityID {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.nextID++
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeNotificationStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Notification, error) {
	// Newest first, matching the real store's ordering
	var out []*models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].StudentID == studentID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, studentID int64) error {
	for _, n := range s.notifications {
		if n.StudentID == studentID {
			n.Read = true
		}
	}
	return nil
}
