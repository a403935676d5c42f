package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meltemk/skyticket/internal/domain"
)

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAccountsUseCase{}
	handler := NewAuthHandler(mockService)

	w, c := testContext("POST", "/membership/register", gin.H{
		"firstName": "Ayse",
		"lastName":  "Yilmaz",
		"email":     "ayse@example.com",
		"password":  "secret",
		"tc":        "12345678901",
		"phone":     "5321112233",
	})

	mockService.On("Register", c.Request.Context(), mock.MatchedBy(func(u domain.UserAccount) bool {
		return u.Email == "ayse@example.com" && u.GovernmentID == "12345678901"
	})).Return(nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_DuplicateEmail(t *testing.T) {
	mockService := &MockAccountsUseCase{}
	handler := NewAuthHandler(mockService)

	w, c := testContext("POST", "/membership/register", gin.H{
		"email":    "meltemkoran49@gmail.com",
		"password": "123456",
	})

	mockService.On("Register", c.Request.Context(), mock.AnythingOfType("domain.UserAccount")).
		Return(domain.ErrEmailInUse)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockAccountsUseCase{}
	handler := NewAuthHandler(mockService)

	w, c := testContext("POST", "/membership/login", gin.H{
		"email":    "meltemkoran49@gmail.com",
		"password": "123456",
	})

	user := &domain.UserAccount{FirstName: "Meltem", LastName: "Koran", Email: "meltemkoran49@gmail.com"}
	mockService.On("Login", c.Request.Context(), "s1", "meltemkoran49@gmail.com", "123456").Return(user, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Meltem")
}

func TestAuthHandler_login_InvalidCredentials(t *testing.T) {
	mockService := &MockAccountsUseCase{}
	handler := NewAuthHandler(mockService)

	w, c := testContext("POST", "/membership/login", gin.H{
		"email":    "meltemkoran49@gmail.com",
		"password": "wrong",
	})

	mockService.On("Login", c.Request.Context(), "s1", "meltemkoran49@gmail.com", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_logout(t *testing.T) {
	mockService := &MockAccountsUseCase{}
	handler := NewAuthHandler(mockService)

	w, c := testContext("POST", "/membership/logout", nil)

	mockService.On("Logout", c.Request.Context(), "s1").Return(nil)

	handler.logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
