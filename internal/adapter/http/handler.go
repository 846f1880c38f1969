package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	encounterapp "semitae/internal/app/encounter"
	"semitae/internal/app/instruction"
	playerapp "semitae/internal/app/player"
	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	InstructionUC     instruction.UseCase
	CreateEncounterUC encounterapp.CreateUseCase
	GetEncounterUC    encounterapp.GetUseCase
	HistoryUC         encounterapp.HistoryUseCase
	CreatePlayerUC    playerapp.CreateUseCase
	GetPlayerUC       playerapp.GetUseCase
	KPI               kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/player", h.createPlayer)
	api.GET("/player/:id", h.getPlayer)
	api.POST("/encounter", h.createEncounter)
	api.GET("/encounter/:id", h.getEncounter)
	api.GET("/encounter/:id/messages", h.listMessages)
	api.POST("/encounter/instruction", h.sendInstruction)

	s.GET("/ops/kpi", h.kpi)
}

type createPlayerRequest struct {
	Name    string            `json:"name"`
	Persona map[string]string `json:"persona,omitempty"`
}

type createEncounterRequest struct {
	Participants []string `json:"participants"`
	Realm        string   `json:"realm,omitempty"`
}

type sendInstructionRequest struct {
	ConversationID string `json:"conversation_id"`
	PlayerID       string `json:"player_id"`
	Instruction    string `json:"instruction"`
}

func (h Handler) createPlayer(c context.Context, ctx *app.RequestContext) {
	var body createPlayerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CreatePlayerUC.Execute(c, playerapp.CreateRequest{Name: body.Name, Persona: body.Persona})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) getPlayer(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GetPlayerUC.Execute(c, playerapp.GetRequest{PlayerID: string(ctx.Param("id"))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createEncounter(c context.Context, ctx *app.RequestContext) {
	var body createEncounterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if len(body.Participants) != 2 {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "exactly two participants required")
		return
	}
	resp, err := h.CreateEncounterUC.Execute(c, encounterapp.CreateRequest{
		Participants: [2]string{body.Participants[0], body.Participants[1]},
		Realm:        body.Realm,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) getEncounter(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GetEncounterUC.Execute(c, encounterapp.GetRequest{EncounterID: string(ctx.Param("id"))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listMessages(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, encounterapp.HistoryRequest{
		ConversationID: string(ctx.Param("id")),
		Limit:          limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

// sendInstruction always answers with the uniform run envelope; the HTTP
// status mirrors the envelope's error kind so plain REST clients can branch
// without parsing it.
func (h Handler) sendInstruction(c context.Context, ctx *app.RequestContext) {
	var body sendInstructionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	res := h.InstructionUC.Run(c, instruction.Request{
		ConversationID: body.ConversationID,
		PlayerID:       body.PlayerID,
		Instruction:    body.Instruction,
	})
	ctx.JSON(statusForResult(res), res)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func statusForResult(res instruction.Result) int {
	if res.OK {
		return consts.StatusOK
	}
	switch res.ErrorKind {
	case instruction.KindNotFound:
		return consts.StatusNotFound
	case instruction.KindNotParticipant:
		return consts.StatusForbidden
	case instruction.KindWrongTurn, instruction.KindRecordConflict:
		return consts.StatusConflict
	case instruction.KindGenerationFailed, instruction.KindClassificationFailed:
		return consts.StatusBadGateway
	case instruction.KindInvalidRequest:
		return consts.StatusBadRequest
	default:
		return consts.StatusInternalServerError
	}
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, encounter.ErrNotParticipant):
		writeErrorBody(ctx, consts.StatusForbidden, "not_participant", err.Error())
	case errors.Is(err, encounter.ErrWrongTurn):
		writeErrorBody(ctx, consts.StatusConflict, "wrong_turn", err.Error())
	case errors.Is(err, encounterapp.ErrUnknownPlayer):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_player", err.Error())
	case errors.Is(err, encounterapp.ErrSameParticipant):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, encounterapp.ErrInvalidRequest),
		errors.Is(err, playerapp.ErrInvalidRequest),
		errors.Is(err, instruction.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
