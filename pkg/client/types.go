package client

import "time"

type User struct {
	Id        int       `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Link struct {
	AuthorizerId int `json:"authorizer_id"`
	AuthorizedId int `json:"authorized_id"`
}

type Budget struct {
	Id     int    `json:"budget_id"`
	Name   string `json:"budget_name"`
	UserId int    `json:"user_id"`
}

type BudgetInput struct {
	Name string `json:"budget_name"`
}

type Group struct {
	Id       int    `json:"group_id"`
	Name     string `json:"group_name"`
	BudgetId int    `json:"budget_id"`
}

type GroupInput struct {
	Name string `json:"group_name"`
}

// Category durations are whole seconds. TimeUsed is only set by detailed reads.
type Category struct {
	Id            int    `json:"category_id"`
	Name          string `json:"category_name"`
	TimeAllocated int64  `json:"time_allocated"`
	BudgetId      int    `json:"budget_id"`
	GroupId       *int   `json:"group_id"`
	TimeUsed      *int64 `json:"time_used,omitempty"`
}

type CategoryInput struct {
	Name          string `json:"category_name"`
	TimeAllocated int64  `json:"time_allocated"`
	GroupId       *int   `json:"group_id,omitempty"`
}

type Transaction struct {
	Id         int       `json:"transaction_id"`
	Name       string    `json:"transaction_name"`
	Period     int64     `json:"period"`
	DateTime   time.Time `json:"date_time"`
	CategoryId int       `json:"category_id"`
}

// TransactionInput leaves the date to the server when DateTime is nil.
type TransactionInput struct {
	Name     string     `json:"transaction_name"`
	Period   int64      `json:"period"`
	DateTime *time.Time `json:"date_time,omitempty"`
}

type CategoryUsage struct {
	CategoryId    int    `json:"category_id"`
	CategoryName  string `json:"category_name"`
	GroupId       *int   `json:"group_id"`
	GroupName     string `json:"group_name,omitempty"`
	TimeAllocated int64  `json:"time_allocated"`
	TimeUsed      int64  `json:"time_used"`
	Remaining     int64  `json:"remaining"`
}

type BudgetStats struct {
	BudgetId       int             `json:"budget_id"`
	Categories     []CategoryUsage `json:"categories"`
	TotalAllocated int64           `json:"total_allocated"`
	TotalUsed      int64           `json:"total_used"`
	TotalRemaining int64           `json:"total_remaining"`
}
