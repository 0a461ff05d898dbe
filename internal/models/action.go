package models

import (
	"encoding/json"
	"errors"
)

// ErrUnknownAction is returned for a missing or unrecognized action tag.
var ErrUnknownAction = errors.New("invalid action")

// ActionRequest is a closed set of request variants, one per action.
// ParseAction is the only constructor; handlers switch over the concrete
// types exhaustively.
type ActionRequest interface {
	isAction()
}

type CreateAction struct {
	StudentRequest
}

type ReadAction struct {
	Search string
}

type UpdateAction struct {
	ID *int64
	StudentRequest
}

type DeleteAction struct {
	ID *int64
}

type AnalyticsAction struct{}

func (CreateAction) isAction()    {}
func (ReadAction) isAction()      {}
func (UpdateAction) isAction()    {}
func (DeleteAction) isAction()    {}
func (AnalyticsAction) isAction() {}

// ParseAction decodes a raw action payload into its typed variant.
func ParseAction(data []byte) (ActionRequest, error) {
	var raw struct {
		Action string `json:"action"`
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Course string `json:"course"`
		Grade  *int   `json:"grade"`
		Search string `json:"search"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	req := StudentRequest{
		Name:   raw.Name,
		Email:  raw.Email,
		Course: raw.Course,
		Grade:  raw.Grade,
	}

	switch raw.Action {
	case "create":
		return CreateAction{StudentRequest: req}, nil
	case "read":
		return ReadAction{Search: raw.Search}, nil
	case "update":
		return UpdateAction{ID: raw.ID, StudentRequest: req}, nil
	case "delete":
		return DeleteAction{ID: raw.ID}, nil
	case "analytics":
		return AnalyticsAction{}, nil
	default:
		return nil, ErrUnknownAction
	}
}
