package api

import "festbot/app/service/session"

type chatRequest struct {
	SessionID string `json:"session_id"`
	Guest     string `json:"guest" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type transcriptResponse struct {
	SessionID  string         `json:"session_id"`
	Transcript []session.Turn `json:"transcript"`
}

type importRequest struct {
	Path string `json:"path"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

type confirmFamilyResponse struct {
	FamilyID  string `json:"family_id"`
	Confirmed int    `json:"confirmed"`
}

type errorResponse struct {
	Error string `json:"error"`
}
