package worker

// recusto_worker.go
// Processes cost-snapshot refresh jobs from QueueRecusto.
// When a node's cost inputs change (insumo cost, produto price, component
// edit), every receita and combo that depends on it — directly or through
// intermediate receitas — gets its denormalized CustoCalculado refreshed.
// The snapshot is display-only; authoritative reads always go through the
// pricing engine.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
)

// RecustoJobPayload is the job envelope sent to QueueRecusto.
type RecustoJobPayload struct {
	Tipo string `json:"tipo"` // insumo | produto | receita | combo
	ID   string `json:"id"`
}

type RecustoWorker struct {
	engine      *pricing.Engine
	receitaRepo repository.ReceitaRepository
	comboRepo   repository.ComboRepository
}

func NewRecustoWorker(
	engine *pricing.Engine,
	receitaRepo repository.ReceitaRepository,
	comboRepo repository.ComboRepository,
) *RecustoWorker {
	return &RecustoWorker{engine: engine, receitaRepo: receitaRepo, comboRepo: comboRepo}
}

// reverse-edge column per changed node type, as seen from receita_componentes
var componenteColuna = map[string]string{
	"insumo":  "insumo_id",
	"produto": "produto_id",
	"receita": "receita_filha_id",
	"combo":   "combo_id",
}

// Process walks the dependency graph upward from the changed node and
// refreshes every affected snapshot. Visited sets bound the walk, so cyclic
// compositions terminate the same way they do in the resolver.
func (w *RecustoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload RecustoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recusto_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		log.Error().Str("id", payload.ID).Msg("recusto_worker: invalid id")
		return
	}

	receitas := make(map[uuid.UUID]bool)
	combos := make(map[uuid.UUID]bool)

	// The changed node's own snapshot is stale too when it is composite.
	switch payload.Tipo {
	case "receita":
		receitas[id] = true
	case "combo":
		combos[id] = true
	}

	w.coletarDependentes(ctx, payload.Tipo, id, receitas, combos)

	for rid := range receitas {
		custo, err := w.engine.ResolverCusto(ctx, pricing.Ref{Kind: pricing.KindReceita, ID: rid})
		if err != nil {
			log.Error().Err(err).Str("receita_id", rid.String()).Msg("recusto_worker: cost resolution failed")
			continue
		}
		if err := w.receitaRepo.UpdateCustoCalculadoTx(w.receitaRepo.DB(), rid, pricing.Arredondar(custo)); err != nil {
			log.Error().Err(err).Str("receita_id", rid.String()).Msg("recusto_worker: snapshot update failed")
		}
	}
	for cid := range combos {
		custo, err := w.engine.ResolverCusto(ctx, pricing.Ref{Kind: pricing.KindCombo, ID: cid})
		if err != nil {
			log.Error().Err(err).Str("combo_id", cid.String()).Msg("recusto_worker: cost resolution failed")
			continue
		}
		if err := w.comboRepo.UpdateCustoCalculadoTx(w.comboRepo.DB(), cid, pricing.Arredondar(custo)); err != nil {
			log.Error().Err(err).Str("combo_id", cid.String()).Msg("recusto_worker: snapshot update failed")
		}
	}

	log.Info().
		Str("tipo", payload.Tipo).
		Str("id", payload.ID).
		Int("receitas", len(receitas)).
		Int("combos", len(combos)).
		Msg("recusto_worker: snapshots refreshed")
}

// coletarDependentes expands the affected sets through reverse edges:
// receitas referencing the node as a component, combos holding it as a flat
// item, and — transitively — everything referencing those receitas/combos.
func (w *RecustoWorker) coletarDependentes(ctx context.Context, tipo string, id uuid.UUID, receitas, combos map[uuid.UUID]bool) {
	type node struct {
		tipo string
		id   uuid.UUID
	}
	fila := []node{{tipo: tipo, id: id}}
	visitados := map[node]bool{}

	for len(fila) > 0 {
		atual := fila[0]
		fila = fila[1:]
		if visitados[atual] {
			continue
		}
		visitados[atual] = true

		if coluna, ok := componenteColuna[atual.tipo]; ok {
			pais, err := w.receitaRepo.ReceitasQueReferenciam(ctx, coluna, atual.id)
			if err != nil {
				log.Error().Err(err).Str("coluna", coluna).Msg("recusto_worker: reverse edge query failed")
			}
			for _, pid := range pais {
				receitas[pid] = true
				fila = append(fila, node{tipo: "receita", id: pid})
			}
		}

		// Combos only hold produtos and receitas as flat items.
		if atual.tipo == "produto" || atual.tipo == "receita" {
			pais, err := w.comboRepo.CombosQueReferenciam(ctx, atual.tipo+"_id", atual.id)
			if err != nil {
				log.Error().Err(err).Str("tipo", atual.tipo).Msg("recusto_worker: reverse edge query failed")
			}
			for _, pid := range pais {
				combos[pid] = true
				fila = append(fila, node{tipo: "combo", id: pid})
			}
		}
	}
}
