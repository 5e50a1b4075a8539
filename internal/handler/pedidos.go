package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/apierror"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/middleware"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/service"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar pedido
// @Description Precifica e registra um pedido. A validacao de selecoes e tudo-ou-nada: a primeira rejeicao descarta o pedido inteiro e retorna 422 com o codigo da regra violada.
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPedidoRequest true "Itens do pedido"
// @Success 201 {object} dto.PedidoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.SelectionError
// @Router /v1/pedidos [post]
func (h *PedidosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPedido(c.Request.Context(), middleware.GetEmpresaID(c), req)
	if err != nil {
		respondErroNegocio(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary Cancelar pedido
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do pedido"
// @Param body body dto.CancelarPedidoRequest true "Motivo"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/pedidos/{id} [delete]
func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	log.Info().
		Str("pedido_id", id.String()).
		Str("usuario", claims.Username).
		Str("motivo", req.Motivo).
		Msg("pedido cancelado")

	if err := h.svc.CancelarPedido(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PedidosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Pedido nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetEmpresaID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
