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

type ReceitasHandler struct{ svc service.ReceitaService }

func NewReceitasHandler(svc service.ReceitaService) *ReceitasHandler {
	return &ReceitasHandler{svc: svc}
}

// Criar godoc
// @Summary Criar receita
// @Description Cria uma receita com seus componentes (insumos, outras receitas, produtos ou combos). Cada componente referencia exatamente um tipo.
// @Tags receitas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarReceitaRequest true "Receita"
// @Success 201 {object} dto.ReceitaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/receitas [post]
func (h *ReceitasHandler) Criar(c *gin.Context) {
	var req dto.CriarReceitaRequest
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

func (h *ReceitasHandler) Listar(c *gin.Context) {
	var filter dto.ReceitaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetEmpresaID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar receitas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReceitasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Receita nao encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReceitasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarReceitaRequest
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

func (h *ReceitasHandler) Desativar(c *gin.Context) {
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

// AddComponente godoc
// @Summary Adicionar componente a receita
// @Description Adiciona uma aresta de composicao. Auto-referencia direta e rejeitada; ciclos indiretos sao permitidos e neutralizados no calculo de custo.
// @Tags receitas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da receita"
// @Param body body dto.ComponenteRequest true "Componente"
// @Success 200 {object} dto.ReceitaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/receitas/{id}/componentes [post]
func (h *ReceitasHandler) AddComponente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ComponenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddComponente(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReceitasHandler) RemoveComponente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	componenteID, err := uuid.Parse(c.Param("componente_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de componente invalido"))
		return
	}
	if err := h.svc.RemoveComponente(c.Request.Context(), id, componenteID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
