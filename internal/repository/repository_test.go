package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/internal/models"
	"github.com/devconnect/devconnect/internal/repository"
)

func newTestManager(t *testing.T) repository.Manager {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := repository.OpenDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.CreateSchema(context.Background(), db))

	repo := repository.NewManager(db)
	repo.MustValidate()
	return repo
}

func registerUser(t *testing.T, repo repository.Manager, name, email string) *models.User {
	t.Helper()

	user, err := repository.NewRegisterUserHandler(repo).Execute(context.Background(), repository.RegisterUserMessage{
		Name:     name,
		Email:    email,
		Password: "secret-password",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	t.Run("creates a user with defaults", func(t *testing.T) {
		user := registerUser(t, repo, "Jane Doe", "jane@example.com")

		assert.Equal(t, "Jane Doe", user.Name)
		assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret-password", user.PasswordHash)

		expectedID, err := hashid.NewUUID("jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, expectedID, user.ID)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, err := repository.NewRegisterUserHandler(repo).Execute(ctx, repository.RegisterUserMessage{
			Name:     "Jane Again",
			Email:    "jane@example.com",
			Password: "another-password",
		})
		assert.ErrorIs(t, err, repository.ErrUserExists)
	})

	t.Run("finds the user by email", func(t *testing.T) {
		user, err := repo.Users().GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
	})

	t.Run("maps an id collision to the duplicate error", func(t *testing.T) {
		// occupy the id bob@example.com would get, under another email
		takenID, err := hashid.NewUUID("bob@example.com")
		require.NoError(t, err)

		_, err = repo.Users().Register(ctx, &models.User{
			ID:           takenID,
			Name:         "Imposter",
			Email:        "imposter@example.com",
			PasswordHash: "irrelevant",
		})
		require.NoError(t, err)

		_, err = repository.NewRegisterUserHandler(repo).Execute(ctx, repository.RegisterUserMessage{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "secret-password",
		})
		assert.ErrorIs(t, err, repository.ErrUserExists)
	})

	t.Run("store failure is not reported as a duplicate", func(t *testing.T) {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
		db, err := repository.OpenDB(dsn)
		require.NoError(t, err)
		require.NoError(t, repository.CreateSchema(ctx, db))

		broken := repository.NewManager(db)
		require.NoError(t, db.Close())

		_, err = repository.NewRegisterUserHandler(broken).Execute(ctx, repository.RegisterUserMessage{
			Name:     "Carol",
			Email:    "carol@example.com",
			Password: "secret-password",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrUserExists)
	})
}

func TestUserProvider(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	registerUser(t, repo, "Jane Doe", "jane@example.com")
	provider := repository.NewUserProvider(repo.Users())

	t.Run("verifies valid credentials", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(ctx, "jane@example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", identity.Name())
		assert.Equal(t, "jane@example.com", identity.Email())
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "jane@example.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("unknown email reads like a wrong password", func(t *testing.T) {
		_, wrongPwd := provider.VerifyIdentity(ctx, "jane@example.com", "wrong")
		_, unknown := provider.VerifyIdentity(ctx, "nobody@example.com", "secret-password")
		assert.Equal(t, wrongPwd, unknown)
	})
}

func TestProfilesUpsert(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	user := registerUser(t, repo, "Jane Doe", "jane@example.com")

	t.Run("creates the profile on first write", func(t *testing.T) {
		profile, err := repo.Profiles().Upsert(ctx, &models.Profile{
			UserID:  user.ID,
			Status:  "Developer",
			Company: "Acme",
			Skills:  []string{"Go", "SQL"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Developer", profile.Status)
		assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
		require.NotNil(t, profile.User)
		assert.Equal(t, "Jane Doe", profile.User.Name)
	})

	t.Run("update retains fields the caller did not send", func(t *testing.T) {
		profile, err := repo.Profiles().Upsert(ctx, &models.Profile{
			UserID: user.ID,
			Status: "Senior Developer",
		})
		require.NoError(t, err)
		assert.Equal(t, "Senior Developer", profile.Status)
		assert.Equal(t, "Acme", profile.Company)
	})

	t.Run("update moves updated_at forward", func(t *testing.T) {
		before, err := repo.Profiles().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, before.UpdatedAt)

		profile, err := repo.Profiles().Upsert(ctx, &models.Profile{
			UserID: user.ID,
			Status: "Principal Developer",
		})
		require.NoError(t, err)
		require.NotNil(t, profile.UpdatedAt)
		assert.True(t, profile.UpdatedAt.After(*before.UpdatedAt))
	})

	t.Run("second user has no profile", func(t *testing.T) {
		other := registerUser(t, repo, "John Doe", "john@example.com")
		_, err := repo.Profiles().GetByUserID(ctx, other.ID)
		assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	})

	t.Run("list includes owners", func(t *testing.T) {
		profiles, err := repo.Profiles().List(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		require.NotNil(t, profiles[0].User)
		assert.Equal(t, "Jane Doe", profiles[0].User.Name)
	})
}

func TestProfileExperienceAndEducation(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	user := registerUser(t, repo, "Jane Doe", "jane@example.com")
	_, err := repo.Profiles().Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Developer",
		Skills: []string{"Go"},
	})
	require.NoError(t, err)

	older := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("experience comes back newest first", func(t *testing.T) {
		_, err := repo.Profiles().AddExperience(ctx, user.ID, &models.Experience{
			Title:   "Junior Developer",
			Company: "Acme",
			From:    &older,
		})
		require.NoError(t, err)

		profile, err := repo.Profiles().AddExperience(ctx, user.ID, &models.Experience{
			Title:   "Senior Developer",
			Company: "Globex",
			From:    &newer,
		})
		require.NoError(t, err)

		require.Len(t, profile.Experience, 2)
		assert.Equal(t, "Senior Developer", profile.Experience[0].Title)
		assert.Equal(t, "Junior Developer", profile.Experience[1].Title)
	})

	t.Run("delete removes one entry", func(t *testing.T) {
		profile, err := repo.Profiles().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, profile.Experience, 2)

		profile, err = repo.Profiles().DeleteExperience(ctx, user.ID, profile.Experience[0].ID)
		require.NoError(t, err)
		require.Len(t, profile.Experience, 1)
		assert.Equal(t, "Junior Developer", profile.Experience[0].Title)
	})

	t.Run("deleting an unknown entry is a no-op", func(t *testing.T) {
		profile, err := repo.Profiles().DeleteExperience(ctx, user.ID, uuid.New())
		require.NoError(t, err)
		assert.Len(t, profile.Experience, 1)
	})

	t.Run("education add and delete", func(t *testing.T) {
		profile, err := repo.Profiles().AddEducation(ctx, user.ID, &models.Education{
			School: "State University",
			Degree: "BSc",
			From:   &older,
		})
		require.NoError(t, err)
		require.Len(t, profile.Education, 1)

		profile, err = repo.Profiles().DeleteEducation(ctx, user.ID, profile.Education[0].ID)
		require.NoError(t, err)
		assert.Empty(t, profile.Education)
	})

	t.Run("entries require a profile", func(t *testing.T) {
		other := registerUser(t, repo, "John Doe", "john@example.com")
		_, err := repo.Profiles().AddExperience(ctx, other.ID, &models.Experience{
			Title:   "Developer",
			Company: "Acme",
			From:    &older,
		})
		assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	})
}

func TestPosts(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	author := registerUser(t, repo, "Jane Doe", "jane@example.com")
	reader := registerUser(t, repo, "John Doe", "john@example.com")

	post, err := repo.Posts().Create(ctx, &models.Post{
		UserID: author.ID,
		Text:   "hello world",
		Name:   author.Name,
		Avatar: author.Avatar,
	})
	require.NoError(t, err)

	t.Run("get by id returns the stored post", func(t *testing.T) {
		got, err := repo.Posts().GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello world", got.Text)
		assert.Equal(t, author.ID, got.UserID)
	})

	t.Run("unknown post id", func(t *testing.T) {
		_, err := repo.Posts().GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})

	t.Run("liking twice keeps the set at one", func(t *testing.T) {
		likes, err := repo.Posts().Like(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 1)

		likes, err = repo.Posts().Like(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 1)
	})

	t.Run("unlike empties the set, absent membership is a no-op", func(t *testing.T) {
		likes, err := repo.Posts().Unlike(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Empty(t, likes)

		likes, err = repo.Posts().Unlike(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("comments come back newest first", func(t *testing.T) {
		// explicit timestamps, sqlite defaults only have second resolution
		earlier := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
		later := time.Date(2023, 3, 1, 11, 0, 0, 0, time.UTC)

		_, err := repo.Posts().AddComment(ctx, post.ID, &models.Comment{
			UserID:    reader.ID,
			Text:      "first",
			Name:      reader.Name,
			CreatedAt: &earlier,
		})
		require.NoError(t, err)

		comments, err := repo.Posts().AddComment(ctx, post.ID, &models.Comment{
			UserID:    reader.ID,
			Text:      "second",
			Name:      reader.Name,
			CreatedAt: &later,
		})
		require.NoError(t, err)

		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].Text)
		assert.Equal(t, "first", comments[1].Text)
	})

	t.Run("only the comment author may delete it", func(t *testing.T) {
		comments, err := repo.Posts().GetByID(ctx, post.ID)
		require.NoError(t, err)
		require.NotEmpty(t, comments.Comments)

		commentID := comments.Comments[0].ID

		_, err = repo.Posts().DeleteComment(ctx, post.ID, commentID, author.ID)
		assert.ErrorIs(t, err, repository.ErrNotPostOwner)

		remaining, err := repo.Posts().DeleteComment(ctx, post.ID, commentID, reader.ID)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})

	t.Run("only the author may delete the post", func(t *testing.T) {
		err := repo.Posts().Delete(ctx, post.ID, reader.ID)
		assert.ErrorIs(t, err, repository.ErrNotPostOwner)

		err = repo.Posts().Delete(ctx, post.ID, author.ID)
		require.NoError(t, err)

		_, err = repo.Posts().GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	repo := newTestManager(t)
	ctx := context.Background()

	user := registerUser(t, repo, "Jane Doe", "jane@example.com")
	other := registerUser(t, repo, "John Doe", "john@example.com")

	_, err := repo.Profiles().Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Developer",
		Skills: []string{"Go"},
	})
	require.NoError(t, err)

	mine, err := repo.Posts().Create(ctx, &models.Post{UserID: user.ID, Text: "my post"})
	require.NoError(t, err)

	theirs, err := repo.Posts().Create(ctx, &models.Post{UserID: other.ID, Text: "their post"})
	require.NoError(t, err)

	_, err = repo.Posts().Like(ctx, theirs.ID, user.ID)
	require.NoError(t, err)

	_, err = repo.Posts().AddComment(ctx, theirs.ID, &models.Comment{UserID: user.ID, Text: "nice"})
	require.NoError(t, err)

	err = repository.NewDeleteAccountHandler(repo).Execute(ctx, repository.DeleteAccountMessage{UserID: user.ID})
	require.NoError(t, err)

	t.Run("user record is gone", func(t *testing.T) {
		_, err := repo.Users().GetByEmail(ctx, "jane@example.com")
		assert.Error(t, err)
	})

	t.Run("profile is gone", func(t *testing.T) {
		_, err := repo.Profiles().GetByUserID(ctx, user.ID)
		assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	})

	t.Run("authored posts are gone", func(t *testing.T) {
		_, err := repo.Posts().GetByID(ctx, mine.ID)
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})

	t.Run("their likes and comments elsewhere are gone too", func(t *testing.T) {
		post, err := repo.Posts().GetByID(ctx, theirs.ID)
		require.NoError(t, err)
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Comments)
	})
}
