// Package bankstub provides an in-memory implementation of the banking
// service HTTP surface for harness tests to run against.
//
// It implements just enough contract to exercise every harness code path:
// create/read/update/delete for users, accounts and transactions, the
// lookup routes, validation failures as 4xx, and the insufficient-funds
// rule on withdrawals and transfers.
package bankstub

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Server holds the in-memory state behind the gin engine.
type Server struct {
	mu sync.Mutex

	users        map[int64]*domain.User
	accounts     map[int64]*domain.Account
	transactions map[int64]*domain.Transaction

	nextUserID        int64
	nextAccountID     int64
	nextTransactionID int64

	authToken string
	engine    *gin.Engine
}

// Option configures the stub.
type Option func(*Server)

// WithAuthToken makes every route require the given bearer token.
func WithAuthToken(token string) Option {
	return func(s *Server) {
		s.authToken = token
	}
}

// New returns a stub server with empty state.
func New(opts ...Option) *Server {
	s := &Server{
		users:        make(map[int64]*domain.User),
		accounts:     make(map[int64]*domain.Account),
		transactions: make(map[int64]*domain.Transaction),
	}

	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	api := engine.Group("/api")

	if s.authToken != "" {
		api.Use(s.requireToken)
	}

	api.POST("/users", s.createUser)
	api.GET("/users", s.listUsers)
	api.GET("/users/:id", s.getUser)
	api.PUT("/users/:id", s.updateUser)
	api.DELETE("/users/:id", s.deleteUser)
	api.GET("/users/username/:username", s.getUserByUsername)

	api.POST("/accounts", s.createAccount)
	api.GET("/accounts", s.listAccounts)
	api.GET("/accounts/:id", s.getAccount)
	api.GET("/accounts/user/:userId", s.getAccountsByUser)
	api.PUT("/accounts/:id", s.updateAccount)
	api.DELETE("/accounts/:id", s.deleteAccount)
	api.GET("/accounts/number/:number", s.getAccountByNumber)

	api.POST("/transactions", s.createTransaction)
	api.GET("/transactions", s.listTransactions)
	api.GET("/transactions/:id", s.getTransaction)
	api.GET("/transactions/account/:accountId", s.getTransactionsByAccount)
	api.GET("/transactions/reference/:reference", s.getTransactionByReference)

	s.engine = engine

	return s
}

// ServeHTTP dispatches to the gin engine.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) requireToken(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.authToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}

	return id, true
}

func (s *Server) createUser(c *gin.Context) {
	var params domain.CreateUserParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == params.Username {
			c.JSON(http.StatusConflict, gin.H{"error": domain.ErrUsernameAlreadyExists.Error()})
			return
		}
	}

	s.nextUserID++
	user := &domain.User{
		ID:          s.nextUserID,
		Username:    params.Username,
		Email:       params.Email,
		FullName:    params.FullName,
		PhoneNumber: params.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.users[user.ID] = user

	c.JSON(http.StatusCreated, user)
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}

	c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var params domain.CreateUserParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error()})
		return
	}

	user.Username = params.Username
	user.Email = params.Email
	user.FullName = params.FullName
	user.PhoneNumber = params.PhoneNumber
	user.UpdatedAt = time.Now().UTC()

	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error()})
		return
	}

	delete(s.users, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) getUserByUsername(c *gin.Context) {
	username := c.Param("username")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			c.JSON(http.StatusOK, u)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error()})
}

func (s *Server) createAccount(c *gin.Context) {
	var params domain.CreateAccountParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.Balance.IsNegative() || params.CreditLimit.IsNegative() || params.OverdraftLimit.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "balance and limits must be non-negative"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[params.UserID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrAccountOwnerNotFound.Error()})
		return
	}

	status := params.Status
	if status == "" {
		status = domain.AccountStatusActive
	}

	s.nextAccountID++
	account := &domain.Account{
		ID:             s.nextAccountID,
		AccountNumber:  fmt.Sprintf("ACC-%010d", s.nextAccountID),
		AccountType:    params.AccountType,
		Status:         status,
		UserID:         params.UserID,
		Balance:        params.Balance,
		CreditLimit:    params.CreditLimit,
		OverdraftLimit: params.OverdraftLimit,
		Currency:       "USD",
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	s.accounts[account.ID] = account

	c.JSON(http.StatusCreated, account)
}

func (s *Server) listAccounts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}

	c.JSON(http.StatusOK, accounts)
}

func (s *Server) getAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAccountNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

func (s *Server) getAccountsByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*domain.Account, 0)
	for _, a := range s.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}

	c.JSON(http.StatusOK, accounts)
}

func (s *Server) updateAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var params domain.CreateAccountParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAccountNotFound.Error()})
		return
	}

	account.AccountType = params.AccountType
	if params.Status != "" {
		account.Status = params.Status
	}
	account.Balance = params.Balance
	account.CreditLimit = params.CreditLimit
	account.OverdraftLimit = params.OverdraftLimit
	account.UpdatedAt = time.Now().UTC()

	c.JSON(http.StatusOK, account)
}

func (s *Server) deleteAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAccountNotFound.Error()})
		return
	}

	delete(s.accounts, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) getAccountByNumber(c *gin.Context) {
	number := c.Param("number")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.AccountNumber == number {
			c.JSON(http.StatusOK, a)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAccountNotFound.Error()})
}

func (s *Server) createTransaction(c *gin.Context) {
	var params domain.CreateTransactionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !params.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidAmount.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[params.FromAccountID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrAccountNotFound.Error()})
		return
	}

	to := from

	if params.TransactionType == domain.TransactionTypeTransfer {
		if params.ToAccountID == params.FromAccountID {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrSameTransferAccounts.Error()})
			return
		}

		to, ok = s.accounts[params.ToAccountID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrAccountNotFound.Error()})
			return
		}
	}

	switch params.TransactionType {
	case domain.TransactionTypeDeposit:
		from.Balance = from.Balance.Add(params.Amount)
	case domain.TransactionTypeWithdrawal:
		if from.Balance.LessThan(params.Amount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInsufficientBalance.Error()})
			return
		}
		from.Balance = from.Balance.Sub(params.Amount)
	case domain.TransactionTypeTransfer:
		if from.Balance.LessThan(params.Amount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInsufficientBalance.Error()})
			return
		}
		from.Balance = from.Balance.Sub(params.Amount)
		to.Balance = to.Balance.Add(params.Amount)
	}

	toAccountID := params.ToAccountID
	if toAccountID == 0 {
		toAccountID = from.ID
	}

	s.nextTransactionID++
	transaction := &domain.Transaction{
		ID:                   s.nextTransactionID,
		TransactionReference: "TXN-" + uuid.NewString(),
		TransactionType:      params.TransactionType,
		Amount:               params.Amount,
		Currency:             params.Currency,
		Description:          params.Description,
		FromAccountID:        params.FromAccountID,
		ToAccountID:          toAccountID,
		Status:               "COMPLETED",
		CreatedAt:            time.Now().UTC(),
	}
	s.transactions[transaction.ID] = transaction

	c.JSON(http.StatusCreated, transaction)
}

func (s *Server) listTransactions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]*domain.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		transactions = append(transactions, tx)
	}

	c.JSON(http.StatusOK, transactions)
}

func (s *Server) getTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrTransactionNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (s *Server) getTransactionsByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]*domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.FromAccountID == accountID || tx.ToAccountID == accountID {
			transactions = append(transactions, tx)
		}
	}

	c.JSON(http.StatusOK, transactions)
}

func (s *Server) getTransactionByReference(c *gin.Context) {
	reference := c.Param("reference")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.TransactionReference == reference {
			c.JSON(http.StatusOK, tx)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrTransactionNotFound.Error()})
}

// SeedBalance overwrites an account balance directly, bypassing transactions.
func (s *Server) SeedBalance(accountID int64, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account, ok := s.accounts[accountID]; ok {
		account.Balance = balance
	}
}
