package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
)

// Identity — результат работы шлюза аутентификации.
type Identity struct {
	UserID string
	Email  string
}

var (
	// ErrUnauthenticated возвращается, когда запрос не удалось сопоставить с пользователем.
	ErrUnauthenticated = errors.New("authentication required")
)

// Authenticator сопоставляет входящий запрос с пользователем или отклоняет его.
// Продакшн-окружение подставляет свою реализацию (JWT, сессии и т.п.);
// сервисной логике важен только контракт.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

// StaticTokens — реализация Authenticator по таблице bearer-токенов.
// Подходит для локальной разработки и тестов.
type StaticTokens struct {
	mu     sync.RWMutex
	tokens map[string]Identity
}

// NewStaticTokens создаёт аутентификатор с заданной таблицей токенов.
func NewStaticTokens(tokens map[string]Identity) *StaticTokens {
	copied := make(map[string]Identity, len(tokens))
	for token, identity := range tokens {
		copied[token] = identity
	}
	return &StaticTokens{tokens: copied}
}

// Register добавляет или заменяет токен.
func (s *StaticTokens) Register(token string, identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = identity
}

// Authenticate извлекает bearer-токен из заголовка Authorization.
func (s *StaticTokens) Authenticate(r *http.Request) (Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.tokens[token]
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

type contextKey struct{}

// WithIdentity кладёт identity в контекст запроса.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext возвращает identity, положенную middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

var _ Authenticator = (*StaticTokens)(nil)
