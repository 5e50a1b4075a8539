package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/apierror"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/service"
)

type PrecificacaoHandler struct{ svc service.PrecificacaoService }

func NewPrecificacaoHandler(svc service.PrecificacaoService) *PrecificacaoHandler {
	return &PrecificacaoHandler{svc: svc}
}

// Custo godoc
// @Summary Resolver custo sob demanda
// @Description Resolve o custo composto do item percorrendo o grafo de composicao. Ciclos sao neutralizados (contribuem zero); arestas malformadas retornam erro.
// @Tags precificacao
// @Produce json
// @Security BearerAuth
// @Param tipo path string true "insumo | produto | receita | combo"
// @Param id path string true "UUID do item"
// @Success 200 {object} dto.CustoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/custos/{tipo}/{id} [get]
func (h *PrecificacaoHandler) Custo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ResolverCusto(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Preco godoc
// @Summary Consulta publica de preco
// @Description Consulta o preco de venda de um item do cardapio. Sem autenticacao; resposta cacheada em redis.
// @Tags precificacao
// @Produce json
// @Param tipo path string true "produto | receita | combo"
// @Param id path string true "UUID do item"
// @Success 200 {object} dto.ConsultaPrecoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precos/{tipo}/{id} [get]
func (h *PrecificacaoHandler) Preco(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ConsultarPreco(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// queryInt reads an integer query param with a fallback.
func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
