package service

import (
	"context"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postRepoStub is a stub for repositories.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, string) (*models.Post, error)
	getByAuthorFn  func(context.Context, uint) ([]models.Post, error)
	updateFn       func(context.Context, string, bson.M) error
	deleteFn       func(context.Context, string) error
	findFn         func(context.Context, repositories.PostQuery) ([]models.Post, error)
	countFn        func(context.Context, repositories.PostQuery) (int64, error)
	sampleFn       func(context.Context, int64, int64) ([]models.Post, error)
	incViewsFn     func(context.Context, string) error
	addLikeFn      func(context.Context, string, uint) (*models.Post, error)
	removeLikeFn   func(context.Context, string, uint) (*models.Post, error)
}

func (s *postRepoStub) CreatePost(ctx context.Context, p *models.Post) error {
	return s.createFn(ctx, p)
}
func (s *postRepoStub) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.getByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) UpdatePost(ctx context.Context, id string, patch bson.M) error {
	return s.updateFn(ctx, id, patch)
}
func (s *postRepoStub) DeletePost(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) FindPublished(ctx context.Context, q repositories.PostQuery) ([]models.Post, error) {
	return s.findFn(ctx, q)
}
func (s *postRepoStub) CountPublished(ctx context.Context, q repositories.PostQuery) (int64, error) {
	return s.countFn(ctx, q)
}
func (s *postRepoStub) SamplePublished(ctx context.Context, size, skip int64) ([]models.Post, error) {
	return s.sampleFn(ctx, size, skip)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.incViewsFn(ctx, id)
}
func (s *postRepoStub) AddLike(ctx context.Context, id string, userID uint) (*models.Post, error) {
	return s.addLikeFn(ctx, id, userID)
}
func (s *postRepoStub) RemoveLike(ctx context.Context, id string, userID uint) (*models.Post, error) {
	return s.removeLikeFn(ctx, id, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, id string) (*models.Post, error) { return &models.Post{}, nil },
		getByAuthorFn: func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ string, _ bson.M) error { return nil },
		deleteFn:      func(_ context.Context, _ string) error { return nil },
		findFn: func(_ context.Context, _ repositories.PostQuery) ([]models.Post, error) {
			return []models.Post{}, nil
		},
		countFn:   func(_ context.Context, _ repositories.PostQuery) (int64, error) { return 0, nil },
		sampleFn:  func(_ context.Context, _, _ int64) ([]models.Post, error) { return []models.Post{}, nil },
		incViewsFn: func(_ context.Context, _ string) error { return nil },
		addLikeFn: func(_ context.Context, _ string, _ uint) (*models.Post, error) {
			return &models.Post{}, nil
		},
		removeLikeFn: func(_ context.Context, _ string, _ uint) (*models.Post, error) {
			return &models.Post{}, nil
		},
	}
}

// commentRepoStub is a stub for repositories.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, string) (*models.Comment, error)
	listByPostFn func(context.Context, string) ([]models.Comment, error)
	updateFn     func(context.Context, string, string) error
	deleteFn     func(context.Context, string) error
	incReplyFn   func(context.Context, string, int64) error
	addLikeFn    func(context.Context, string, uint) (bool, error)
	removeLikeFn func(context.Context, string, uint) (bool, error)
}

func (s *commentRepoStub) CreateComment(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) UpdateContent(ctx context.Context, id, content string) error {
	return s.updateFn(ctx, id, content)
}
func (s *commentRepoStub) DeleteComment(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) IncrementReplyCount(ctx context.Context, id string, delta int64) error {
	return s.incReplyFn(ctx, id, delta)
}
func (s *commentRepoStub) AddLike(ctx context.Context, id string, userID uint) (bool, error) {
	return s.addLikeFn(ctx, id, userID)
}
func (s *commentRepoStub) RemoveLike(ctx context.Context, id string, userID uint) (bool, error) {
	return s.removeLikeFn(ctx, id, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = primitive.NewObjectID()
			return nil
		},
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
		listByPostFn: func(_ context.Context, _ string) ([]models.Comment, error) {
			return []models.Comment{}, nil
		},
		updateFn:     func(_ context.Context, _, _ string) error { return nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
		incReplyFn:   func(_ context.Context, _ string, _ int64) error { return nil },
		addLikeFn:    func(_ context.Context, _ string, _ uint) (bool, error) { return true, nil },
		removeLikeFn: func(_ context.Context, _ string, _ uint) (bool, error) { return true, nil },
	}
}

// tagRepoStub is a stub for repositories.TagRepository.
type tagRepoStub struct {
	ensureIndexesFn func(context.Context) error
	upsertFn        func(context.Context, string) (*models.Tag, error)
	getByIDFn       func(context.Context, string) (*models.Tag, error)
	getByNameFn     func(context.Context, string) (*models.Tag, error)
	listFn          func(context.Context) ([]models.Tag, error)
	renameFn        func(context.Context, string, string) (*models.Tag, error)
	setFeaturedFn   func(context.Context, string, bool) (*models.Tag, error)
	deleteFn        func(context.Context, string) error
}

func (s *tagRepoStub) EnsureIndexes(ctx context.Context) error { return s.ensureIndexesFn(ctx) }
func (s *tagRepoStub) UpsertIncrement(ctx context.Context, name string) (*models.Tag, error) {
	return s.upsertFn(ctx, name)
}
func (s *tagRepoStub) GetTagByID(ctx context.Context, id string) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) ListTags(ctx context.Context) ([]models.Tag, error) { return s.listFn(ctx) }
func (s *tagRepoStub) RenameTag(ctx context.Context, id, name string) (*models.Tag, error) {
	return s.renameFn(ctx, id, name)
}
func (s *tagRepoStub) SetFeatured(ctx context.Context, id string, featured bool) (*models.Tag, error) {
	return s.setFeaturedFn(ctx, id, featured)
}
func (s *tagRepoStub) DeleteTag(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		ensureIndexesFn: func(_ context.Context) error { return nil },
		upsertFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{Name: name, UsageCount: 1}, nil
		},
		getByIDFn:   func(_ context.Context, id string) (*models.Tag, error) { return &models.Tag{}, nil },
		getByNameFn: func(_ context.Context, name string) (*models.Tag, error) { return &models.Tag{Name: name}, nil },
		listFn:      func(_ context.Context) ([]models.Tag, error) { return []models.Tag{}, nil },
		renameFn: func(_ context.Context, _, name string) (*models.Tag, error) {
			return &models.Tag{Name: name}, nil
		},
		setFeaturedFn: func(_ context.Context, _ string, f bool) (*models.Tag, error) {
			return &models.Tag{Featured: f}, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// userRepoStub is a stub for repositories.UserRepository.
type userRepoStub struct {
	createFn        func(*models.User) error
	getByIDFn       func(uint) (*models.User, error)
	getByIDsFn      func([]uint) ([]models.User, error)
	getByEmailFn    func(string) (*models.User, error)
	getByHandleFn   func(string) (*models.User, error)
	updateFn        func(*models.User) error
	updateTagsFn    func(uint, []string) error
	deleteFn        func(uint) error
}

func (s *userRepoStub) CreateUser(u *models.User) error               { return s.createFn(u) }
func (s *userRepoStub) GetUserByID(id uint) (*models.User, error)     { return s.getByIDFn(id) }
func (s *userRepoStub) GetUsersByIDs(ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ids)
}
func (s *userRepoStub) GetUserByEmail(email string) (*models.User, error) {
	return s.getByEmailFn(email)
}
func (s *userRepoStub) GetUserByHandle(handle string) (*models.User, error) {
	return s.getByHandleFn(handle)
}
func (s *userRepoStub) UpdateUser(u *models.User) error { return s.updateFn(u) }
func (s *userRepoStub) UpdatePreferredTags(id uint, tags []string) error {
	return s.updateTagsFn(id, tags)
}
func (s *userRepoStub) DeleteUser(id uint) error { return s.deleteFn(id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ *models.User) error { return nil },
		getByIDFn: func(id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn: func(ids []uint) ([]models.User, error) {
			users := make([]models.User, len(ids))
			for i, id := range ids {
				users[i] = models.User{ID: id}
			}
			return users, nil
		},
		getByEmailFn:  func(email string) (*models.User, error) { return &models.User{}, nil },
		getByHandleFn: func(handle string) (*models.User, error) { return &models.User{}, nil },
		updateFn:      func(_ *models.User) error { return nil },
		updateTagsFn:  func(_ uint, _ []string) error { return nil },
		deleteFn:      func(_ uint) error { return nil },
	}
}

// followRepoStub is a stub for repositories.FollowRepository.
type followRepoStub struct {
	createFn          func(*models.Follow) error
	deleteFn          func(uint, uint) error
	isFollowingFn     func(uint, uint) (bool, error)
	getFollowersFn    func(uint) ([]models.User, error)
	getFollowingFn    func(uint) ([]models.User, error)
	getFollowingIDsFn func(uint) ([]uint, error)
}

func (s *followRepoStub) CreateFollow(f *models.Follow) error { return s.createFn(f) }
func (s *followRepoStub) DeleteFollow(followerID, followingID uint) error {
	return s.deleteFn(followerID, followingID)
}
func (s *followRepoStub) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(followerID, followingID)
}
func (s *followRepoStub) GetFollowers(userID uint) ([]models.User, error) {
	return s.getFollowersFn(userID)
}
func (s *followRepoStub) GetFollowing(userID uint) ([]models.User, error) {
	return s.getFollowingFn(userID)
}
func (s *followRepoStub) GetFollowingIDs(userID uint) ([]uint, error) {
	return s.getFollowingIDsFn(userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:          func(_ *models.Follow) error { return nil },
		deleteFn:          func(_, _ uint) error { return nil },
		isFollowingFn:     func(_, _ uint) (bool, error) { return false, nil },
		getFollowersFn:    func(_ uint) ([]models.User, error) { return []models.User{}, nil },
		getFollowingFn:    func(_ uint) ([]models.User, error) { return []models.User{}, nil },
		getFollowingIDsFn: func(_ uint) ([]uint, error) { return []uint{}, nil },
	}
}
