package response

import "github.com/Guyuepp/forum-comments/domain"

// DateTimeFormat 接口统一的时间格式
const DateTimeFormat = "2006-01-02 15:04:05"

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewUserFromDomain(a *domain.Author) *User {
	if a == nil {
		return nil
	}
	return &User{
		ID:   a.ID,
		Name: a.Name,
	}
}

type Registered struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func NewRegisteredFromDomain(u *domain.User) Registered {
	return Registered{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}
