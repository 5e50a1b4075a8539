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

type ComplementosHandler struct{ svc service.ComplementoService }

func NewComplementosHandler(svc service.ComplementoService) *ComplementosHandler {
	return &ComplementosHandler{svc: svc}
}

func (h *ComplementosHandler) Criar(c *gin.Context) {
	var req dto.CriarComplementoRequest
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

func (h *ComplementosHandler) Listar(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetEmpresaID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar complementos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplementosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Complemento nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplementosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarComplementoRequest
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

func (h *ComplementosHandler) Desativar(c *gin.Context) {
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

func (h *ComplementosHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ComplementoItemRequest
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

func (h *ComplementosHandler) RemoveItem(c *gin.Context) {
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

// Vincular godoc
// @Summary Vincular complemento a um pai
// @Description Anexa o complemento a exatamente um pai (produto, receita ou combo) com as regras de selecao daquele anexo.
// @Tags complementos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VincularComplementoRequest true "Vinculo"
// @Success 201 {object} dto.VinculoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/complementos/vinculos [post]
func (h *ComplementosHandler) Vincular(c *gin.Context) {
	var req dto.VincularComplementoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Vincular(c.Request.Context(), middleware.GetEmpresaID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComplementosHandler) Desvincular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("vinculo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desvincular(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// VinculosDoPai lists every complemento attached to a parent entity.
func (h *ComplementosHandler) VinculosDoPai(c *gin.Context) {
	tipo := c.Param("tipo")
	paiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.VinculosDoPai(c.Request.Context(), tipo, paiID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
