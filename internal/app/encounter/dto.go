package encounterapp

import "semitae/internal/domain/encounter"

type CreateRequest struct {
	Participants [2]string
	Realm        string
}

type CreateResponse struct {
	Encounter encounter.Encounter `json:"encounter"`
}

type GetRequest struct {
	EncounterID string
}

type GetResponse struct {
	Encounter encounter.Encounter `json:"encounter"`
}

type HistoryRequest struct {
	ConversationID string
	Limit          int
}

type HistoryResponse struct {
	Messages []encounter.Message `json:"messages"`
}
