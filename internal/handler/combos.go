package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/apierror"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/middleware"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/service"
)

type CombosHandler struct{ svc service.ComboService }

func NewCombosHandler(svc service.ComboService) *CombosHandler {
	return &CombosHandler{svc: svc}
}

func (h *CombosHandler) Criar(c *gin.Context) {
	var req dto.CriarComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), middleware.GetEmpresaID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CombosHandler) Listar(c *gin.Context) {
	var filter dto.ComboFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetEmpresaID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar combos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Combo nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Itens planos ─────────────────────────────────────────────────────────────

func (h *CombosHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ComboItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de item invalido"))
		return
	}
	if err := h.svc.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Seções ───────────────────────────────────────────────────────────────────

func (h *CombosHandler) AddSecao(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ComboSecaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddSecao(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) RemoveSecao(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	secaoID, err := uuid.Parse(c.Param("secao_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de secao invalido"))
		return
	}
	if err := h.svc.RemoveSecao(c.Request.Context(), id, secaoID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CombosHandler) AddSecaoItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	secaoID, err := uuid.Parse(c.Param("secao_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de secao invalido"))
		return
	}
	var req dto.ComboSecaoItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddSecaoItem(c.Request.Context(), id, secaoID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) RemoveSecaoItem(c *gin.Context) {
	secaoID, err := uuid.Parse(c.Param("secao_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de secao invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de item invalido"))
		return
	}
	if err := h.svc.RemoveSecaoItem(c.Request.Context(), secaoID, itemID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
