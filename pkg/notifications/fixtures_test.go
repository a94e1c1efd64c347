package notifications_test

import (
	"context"
	"sync"

	"github.com/danielBingham/communities-notify/pkg/email"
	"github.com/danielBingham/communities-notify/pkg/notifications"
	"github.com/danielBingham/communities-notify/pkg/push"
)

// In-memory collaborator fakes shared across the package tests. These model
// the externally supplied stores the engine depends on.

type memUserStore struct {
	users map[int64]*notifications.User
}

func newMemUserStore(users ...*notifications.User) *memUserStore {
	s := &memUserStore{users: make(map[int64]*notifications.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) GetUserByID(ctx context.Context, id int64) (*notifications.User, error) {
	return s.users[id], nil
}

func (s *memUserStore) SelectUsersByIDs(ctx context.Context, ids []int64) ([]*notifications.User, error) {
	var out []*notifications.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUserStore) SelectUsersByUsernames(ctx context.Context, usernames []string) ([]*notifications.User, error) {
	var out []*notifications.User
	for _, username := range usernames {
		for _, u := range s.users {
			if u.Username == username {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

type memPostStore struct {
	posts map[int64]*notifications.Post
}

func newMemPostStore(posts ...*notifications.Post) *memPostStore {
	s := &memPostStore{posts: make(map[int64]*notifications.Post)}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *memPostStore) GetPostByID(ctx context.Context, id int64) (*notifications.Post, error) {
	return s.posts[id], nil
}

type memCommentStore struct {
	comments map[int64]*notifications.Comment
}

func newMemCommentStore(comments ...*notifications.Comment) *memCommentStore {
	s := &memCommentStore{comments: make(map[int64]*notifications.Comment)}
	for _, c := range comments {
		s.comments[c.ID] = c
	}
	return s
}

func (s *memCommentStore) GetCommentByID(ctx context.Context, id int64) (*notifications.Comment, error) {
	return s.comments[id], nil
}

type memGroupStore struct {
	groups     map[int64]*notifications.Group
	moderators map[int64][]*notifications.User
}

func newMemGroupStore(groups ...*notifications.Group) *memGroupStore {
	s := &memGroupStore{
		groups:     make(map[int64]*notifications.Group),
		moderators: make(map[int64][]*notifications.User),
	}
	for _, g := range groups {
		s.groups[g.ID] = g
	}
	return s
}

func (s *memGroupStore) GetGroupByID(ctx context.Context, id int64) (*notifications.Group, error) {
	return s.groups[id], nil
}

func (s *memGroupStore) SelectGroupModerators(ctx context.Context, groupID int64) ([]*notifications.User, error) {
	return s.moderators[groupID], nil
}

type memSubscriptionStore struct {
	subscribers map[int64][]*notifications.User
}

func newMemSubscriptionStore() *memSubscriptionStore {
	return &memSubscriptionStore{subscribers: make(map[int64][]*notifications.User)}
}

func (s *memSubscriptionStore) SelectPostSubscribers(ctx context.Context, postID int64) ([]*notifications.User, error) {
	return s.subscribers[postID], nil
}

// fakePermissions denies view access to the users listed in denied.
type fakePermissions struct {
	denied map[int64]bool
}

func (p *fakePermissions) CanViewPost(ctx context.Context, user *notifications.User, post *notifications.Post) bool {
	if user == nil {
		return false
	}
	return !p.denied[user.ID]
}

// fakeMailer records sent emails and can fail on demand. onSend runs under
// the lock before the error is considered, letting tests observe engine
// state at the moment of the transport call.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []email.SendEmailParams
	err    error
	onSend func(email.SendEmailParams)
}

func (m *fakeMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.onSend != nil {
		m.onSend(params)
	}
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, params)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fakePushSender records push attempts per device token.
type fakePushSender struct {
	platform push.Platform
	mu       sync.Mutex
	tokens   []string
	payloads []push.Payload
	err      error
}

func (s *fakePushSender) Platform() push.Platform {
	return s.platform
}

func (s *fakePushSender) Send(ctx context.Context, deviceToken string, p push.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tokens = append(s.tokens, deviceToken)
	s.payloads = append(s.payloads, p)
	return nil
}

func (s *fakePushSender) sentTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

func confirmedUser(id int64, username string) *notifications.User {
	return &notifications.User{
		ID:       id,
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Status:   notifications.UserStatusConfirmed,
	}
}
