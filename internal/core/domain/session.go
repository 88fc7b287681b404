package domain

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice - краткое уведомление для пользователя (toast в браузере, строка в терминале).
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Session - состояние сессии, которое явно передается в use case и в HTTP-клиент.
// Живет столько же, сколько запрос (веб) или процесс (CLI).
type Session struct {
	Token string
	User  *User
	// Loading истинно только во время первичной загрузки сессии из хранилища.
	Loading bool

	notices []Notice
}

// IsAuthenticated - производный флаг: токен есть, пользователь загружен.
func (s *Session) IsAuthenticated() bool {
	return s != nil && !s.Loading && s.Token != "" && s.User != nil
}

// BearerToken возвращает токен для заголовка Authorization (пустой для анонимной сессии).
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// UserID - пустой ID для анонимной сессии.
func (s *Session) UserID() ID {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *Session) SignIn(token string, user User) {
	s.Token = token
	s.User = &user
	s.Loading = false
}

// Clear сбрасывает токен и пользователя. Уведомления сохраняются.
func (s *Session) Clear() {
	s.Token = ""
	s.User = nil
	s.Loading = false
}

// Snapshot - копия без очереди уведомлений, для фоновых запросов.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	cp := &Session{Token: s.Token, Loading: s.Loading}
	if s.User != nil {
		u := *s.User
		cp.User = &u
	}
	return cp
}

func (s *Session) Notify(kind NoticeKind, message string) {
	if s == nil {
		return
	}
	s.notices = append(s.notices, Notice{Kind: kind, Message: message})
}

// Notices возвращает накопленные уведомления, не очищая очередь.
func (s *Session) Notices() []Notice {
	if s == nil {
		return nil
	}
	return s.notices
}

// DrainNotices возвращает накопленные уведомления и очищает очередь.
func (s *Session) DrainNotices() []Notice {
	if s == nil {
		return nil
	}
	out := s.notices
	s.notices = nil
	return out
}
