package workflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"fyp-portal/internal/apperrors"
	"fyp-portal/internal/database"
	"fyp-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewEngine(db), db
}

func createSupervisor(t *testing.T, db *gorm.DB, username string) *models.Supervisor {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x", Role: models.RoleSupervisor}
	require.NoError(t, db.Create(&user).Error)

	supervisor := models.Supervisor{
		UserID:     user.ID,
		FirstName:  "Sue",
		LastName:   "Pervisor",
		Email:      username + "@sussex.ac.uk",
		SussexID:   "sv-" + username,
		Department: "Informatics",
	}
	require.NoError(t, db.Create(&supervisor).Error)
	return &supervisor
}

func createStudent(t *testing.T, db *gorm.DB, username string) *models.Student {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	student := models.Student{
		UserID:    user.ID,
		FirstName: "Stu",
		LastName:  "Dent",
		Email:     username + "@sussex.ac.uk",
		SussexID:  "st-" + username,
		Course:    "Computer Science",
	}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func createTopic(t *testing.T, db *gorm.DB, title string) *models.ProjectTopic {
	t.Helper()

	topic := models.ProjectTopic{Title: title, Description: "about " + title}
	require.NoError(t, db.Create(&topic).Error)
	return &topic
}

func TestProposeBySupervisor(t *testing.T) {
	e, db := newTestEngine(t)
	sv1 := createSupervisor(t, db, "sv1")
	t1 := createTopic(t, db, "Machine Learning")
	t2 := createTopic(t, db, "Databases")

	project, err := e.ProposeBySupervisor(sv1, ProjectDraft{
		Title:          "X",
		Description:    "A project",
		RequiredSkills: "Go",
	}, []uint{t2.ID, t1.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusProposed, project.Status)
	require.NotNil(t, project.SupervisorID)
	assert.Equal(t, sv1.ID, *project.SupervisorID)
	assert.Nil(t, project.ProposedByID)

	// topic set round-trips regardless of input order
	got, err := e.GetProject(project.ID)
	require.NoError(t, err)
	var titles []string
	for _, topic := range got.Topics {
		titles = append(titles, topic.Title)
	}
	assert.ElementsMatch(t, []string{"Machine Learning", "Databases"}, titles)
}

func TestProposeBySupervisorValidation(t *testing.T) {
	e, db := newTestEngine(t)
	sv := createSupervisor(t, db, "sv1")
	topic := createTopic(t, db, "Networks")

	t.Run("title at the limit is accepted", func(t *testing.T) {
		project, err := e.ProposeBySupervisor(sv, ProjectDraft{
			Title: strings.Repeat("a", 200),
		}, []uint{topic.ID})
		require.NoError(t, err)
		assert.Equal(t, models.StatusProposed, project.Status)
	})

	t.Run("title over the limit is rejected", func(t *testing.T) {
		_, err := e.ProposeBySupervisor(sv, ProjectDraft{
			Title: strings.Repeat("a", 201),
		}, []uint{topic.ID})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages(), "title")
	})

	t.Run("description over the limit is rejected", func(t *testing.T) {
		_, err := e.ProposeBySupervisor(sv, ProjectDraft{
			Title:       "ok",
			Description: strings.Repeat("d", 1001),
		}, []uint{topic.ID})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages(), "description")
	})

	t.Run("at least one topic is required", func(t *testing.T) {
		_, err := e.ProposeBySupervisor(sv, ProjectDraft{Title: "ok"}, nil)
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages(), "project_topics")
	})

	t.Run("unknown topic ids are rejected", func(t *testing.T) {
		_, err := e.ProposeBySupervisor(sv, ProjectDraft{Title: "ok"}, []uint{9999})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages(), "project_topics")
	})
}

func TestProposeByStudent(t *testing.T) {
	e, db := newTestEngine(t)
	sv := createSupervisor(t, db, "drsmith")
	st := createStudent(t, db, "alice")
	topic := createTopic(t, db, "Security")

	project, err := e.ProposeByStudent(st, ProjectDraft{
		Title:        "My own project",
		SupervisorID: &sv.ID,
	}, []uint{topic.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRequested, project.Status)
	require.NotNil(t, project.ProposedByID)
	assert.Equal(t, st.ID, *project.ProposedByID)

	notifications, err := e.UnreadFor(sv.UserID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New project proposed by alice: My own project", notifications[0].Message)
	assert.False(t, notifications[0].Read)

	// a student may hold at most one active proposal
	_, err = e.ProposeByStudent(st, ProjectDraft{
		Title:        "Another one",
		SupervisorID: &sv.ID,
	}, []uint{topic.ID})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestRequestExistingProject(t *testing.T) {
	e, db := newTestEngine(t)
	sv1 := createSupervisor(t, db, "sv1")
	st1 := createStudent(t, db, "bob")
	t1 := createTopic(t, db, "Graphics")

	p1, err := e.ProposeBySupervisor(sv1, ProjectDraft{Title: "X"}, []uint{t1.ID})
	require.NoError(t, err)

	got, err := e.RequestExistingProject(st1, p1.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRequested, got.Status)
	require.NotNil(t, got.ProposedByID)
	assert.Equal(t, st1.ID, *got.ProposedByID)

	notifications, err := e.UnreadFor(sv1.UserID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Project requested by bob: X", notifications[0].Message)
}

func TestRequestExistingProjectConflict(t *testing.T) {
	e, db := newTestEngine(t)
	sv := createSupervisor(t, db, "sv1")
	st1 := createStudent(t, db, "first")
	st2 := createStudent(t, db, "second")
	topic := createTopic(t, db, "Compilers")

	p, err := e.ProposeBySupervisor(sv, ProjectDraft{Title: "Contested"}, []uint{topic.ID})
	require.NoError(t, err)

	_, err = e.RequestExistingProject(st1, p.ID)
	require.NoError(t, err)

	_, err = e.RequestExistingProject(st2, p.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	// the first claim stands
	got, err := e.GetProject(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProposedByID)
	assert.Equal(t, st1.ID, *got.ProposedByID)

	// re-requesting your own claim is allowed
	_, err = e.RequestExistingProject(st1, p.ID)
	assert.NoError(t, err)
}

func TestRequestExistingProjectNotFound(t *testing.T) {
	e, db := newTestEngine(t)
	st := createStudent(t, db, "ghosthunter")

	_, err := e.RequestExistingProject(st, 12345)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAcceptProject(t *testing.T) {
	e, db := newTestEngine(t)
	sv1 := createSupervisor(t, db, "sv1")
	st1 := createStudent(t, db, "carol")
	topic := createTopic(t, db, "Robotics")

	p1, err := e.ProposeBySupervisor(sv1, ProjectDraft{Title: "X"}, []uint{topic.ID})
	require.NoError(t, err)
	_, err = e.RequestExistingProject(st1, p1.ID)
	require.NoError(t, err)

	accepted, err := e.AcceptProject(sv1, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)

	list, err := e.ListAccepted(sv1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p1.ID, list[0].ID)

	// accepting again is a no-op
	again, err := e.AcceptProject(sv1, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, again.Status)
}

func TestRejectProject(t *testing.T) {
	e, db := newTestEngine(t)
	sv := createSupervisor(t, db, "sv1")
	st := createStudent(t, db, "dave")
	topic := createTopic(t, db, "HCI")

	p2, err := e.ProposeBySupervisor(sv, ProjectDraft{Title: "Doomed"}, []uint{topic.ID})
	require.NoError(t, err)
	_, err = e.RequestExistingProject(st, p2.ID)
	require.NoError(t, err)

	require.NoError(t, e.RejectProject(sv, p2.ID))

	_, err = e.GetProject(p2.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	err = e.RejectProject(sv, p2.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListProposedIncludesTopics(t *testing.T) {
	e, db := newTestEngine(t)
	sv := createSupervisor(t, db, "sv1")
	t1 := createTopic(t, db, "AI")
	t2 := createTopic(t, db, "Ethics")

	_, err := e.ProposeBySupervisor(sv, ProjectDraft{Title: "One"}, []uint{t1.ID})
	require.NoError(t, err)
	_, err = e.ProposeBySupervisor(sv, ProjectDraft{Title: "Two"}, []uint{t1.ID, t2.ID})
	require.NoError(t, err)

	projects, err := e.ListProposed()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Equal(t, models.StatusProposed, p.Status)
		assert.NotEmpty(t, p.Topics)
	}
}

func TestUnreadForFiltersByUserAndReadFlag(t *testing.T) {
	e, db := newTestEngine(t)
	sv1 := createSupervisor(t, db, "sv1")
	sv2 := createSupervisor(t, db, "sv2")

	require.NoError(t, e.Notify(sv1.UserID, "hello"))
	require.NoError(t, e.Notify(sv2.UserID, "other"))
	require.NoError(t, db.Create(&models.Notification{
		UserID: sv1.UserID, Message: "already seen", Read: true,
	}).Error)

	notifications, err := e.UnreadFor(sv1.UserID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "hello", notifications[0].Message)
}

func TestCreateTopicValidation(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.CreateTopic("", "desc")
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Messages(), "title")

	_, err = e.CreateTopic(strings.Repeat("t", 101), "desc")
	_, ok = apperrors.AsValidation(err)
	assert.True(t, ok)

	topic, err := e.CreateTopic("Distributed Systems", "consensus and friends")
	require.NoError(t, err)
	assert.NotZero(t, topic.ID)
}
