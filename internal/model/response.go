package model

import "time"

// APIResponse is the envelope wrapped around every API payload.
type APIResponse struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func Success(status int, message string, data interface{}) APIResponse {
	return APIResponse{Status: status, Message: message, Data: data, Timestamp: time.Now()}
}

func Failure(status int, message string) APIResponse {
	return APIResponse{Status: status, Message: message, Timestamp: time.Now()}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

// LoginResponse is the data of a successful login. ExpiresIn is in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	ExpiresIn int64  `json:"expiresIn"`
}
