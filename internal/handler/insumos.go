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

type InsumosHandler struct{ svc service.InsumoService }

func NewInsumosHandler(svc service.InsumoService) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

func (h *InsumosHandler) Criar(c *gin.Context) {
	var req dto.CriarInsumoRequest
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

func (h *InsumosHandler) Listar(c *gin.Context) {
	var filter dto.InsumoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetEmpresaID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar insumos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Insumo nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualizar insumo
// @Description Atualiza o insumo; mudanca de custo dispara o recalculo assincrono das receitas e combos que o usam.
// @Tags insumos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do insumo"
// @Param body body dto.AtualizarInsumoRequest true "Campos a atualizar"
// @Success 200 {object} dto.InsumoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/insumos/{id} [put]
func (h *InsumosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarInsumoRequest
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

func (h *InsumosHandler) Desativar(c *gin.Context) {
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
