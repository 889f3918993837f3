// File: internal/model/user.go
package model

// User 当前登录用户
type User struct {
	Name  string
	Email string
}
