package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// CountDifferenceTotal suma de diferencias de un producto en todos los bares.
type CountDifferenceTotal struct {
	ProductID   string
	ProductName string
	BottlesDiff decimal.Decimal
	DosesDiff   decimal.Decimal
}

// CountDifferenceReport diferencias último vs. anterior conteo, con totales por producto.
// Los totales solo suman filas que tienen conteo anterior.
type CountDifferenceReport struct {
	Rows   []entity.CountDifference
	Totals []CountDifferenceTotal
}

// LossReportRow fila del reporte de pérdidas con nombres resueltos.
type LossReportRow struct {
	Loss         *entity.Loss
	ProductCode  string
	ProductName  string
	LocationName string
}

// LossSubtotal total de pérdidas agrupado por producto o por bar.
type LossSubtotal struct {
	ID    string
	Name  string
	Count int
	Total stock.Quantities
}

// LossReport pérdidas de un rango con su total y subtotales.
type LossReport struct {
	From       time.Time
	To         time.Time
	Rows       []LossReportRow
	Total      stock.Quantities
	ByProduct  []LossSubtotal
	ByLocation []LossSubtotal
}

// LossReportFilter días inclusivos y filtros opcionales del reporte de pérdidas.
type LossReportFilter struct {
	FromDay     time.Time
	ToDay       time.Time
	LocationID  string
	Reason      string // acepta alias; desconocido -> ErrInvalidInput
	PendingOnly bool
	Search      string
}

// ReportUseCase consultas de solo lectura sobre saldos y movimientos.
type ReportUseCase struct {
	repos repository.TxRepos
	tz    *time.Location
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos repository.TxRepos, tz *time.Location) *ReportUseCase {
	if tz == nil {
		tz = time.UTC
	}
	return &ReportUseCase{repos: repos, tz: tz}
}

// Balances saldos actuales del bar del alcance.
func (uc *ReportUseCase) Balances(ctx context.Context, scope entity.Scope) ([]*entity.BalanceView, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	return uc.repos.Balances.ListByLocation(ctx, scope.LocationID)
}

// CountDifferences compara, por bar y producto, el último conteo contra el anterior.
func (uc *ReportUseCase) CountDifferences(ctx context.Context, scope entity.Scope) (*CountDifferenceReport, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	counts, err := uc.repos.Counts.ListLatestPairs(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	locName, err := uc.locationNames(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	names := newProductNames(uc.repos.Products)

	type key struct{ loc, prod string }
	grouped := map[key][]*entity.Count{}
	var keys []key
	for _, c := range counts {
		k := key{c.LocationID, c.ProductID}
		if _, ok := grouped[k]; !ok {
			keys = append(keys, k)
		}
		grouped[k] = append(grouped[k], c)
	}

	out := &CountDifferenceReport{}
	totals := map[string]*CountDifferenceTotal{}
	for _, k := range keys {
		pair := grouped[k]
		sort.Slice(pair, func(i, j int) bool { return pair[i].CountedAt.After(pair[j].CountedAt) })
		_, pname, err := names.get(ctx, k.prod)
		if err != nil {
			return nil, err
		}
		row := entity.CountDifference{
			LocationID:   k.loc,
			LocationName: locName[k.loc],
			ProductID:    k.prod,
			ProductName:  pname,
			Last:         *pair[0],
			BottlesDiff:  decimal.Zero,
			DosesDiff:    decimal.Zero,
		}
		if len(pair) > 1 {
			prev := *pair[1]
			row.Previous = &prev
			row.BottlesDiff = row.Last.Bottles.Sub(prev.Bottles)
			row.DosesDiff = row.Last.Doses.Sub(prev.Doses)

			t, ok := totals[k.prod]
			if !ok {
				t = &CountDifferenceTotal{ProductID: k.prod, ProductName: pname, BottlesDiff: decimal.Zero, DosesDiff: decimal.Zero}
				totals[k.prod] = t
			}
			t.BottlesDiff = t.BottlesDiff.Add(row.BottlesDiff)
			t.DosesDiff = t.DosesDiff.Add(row.DosesDiff)
		}
		out.Rows = append(out.Rows, row)
	}
	for _, t := range totals {
		out.Totals = append(out.Totals, *t)
	}
	sort.Slice(out.Totals, func(i, j int) bool {
		if out.Totals[i].ProductName != out.Totals[j].ProductName {
			return out.Totals[i].ProductName < out.Totals[j].ProductName
		}
		return out.Totals[i].ProductID < out.Totals[j].ProductID
	})
	sort.SliceStable(out.Rows, func(i, j int) bool {
		if out.Rows[i].LocationName != out.Rows[j].LocationName {
			return out.Rows[i].LocationName < out.Rows[j].LocationName
		}
		return out.Rows[i].ProductName < out.Rows[j].ProductName
	})
	return out, nil
}

// Losses pérdidas del restaurante entre dos días (inclusive), con filtros opcionales.
func (uc *ReportUseCase) Losses(ctx context.Context, scope entity.Scope, f LossReportFilter) (*LossReport, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	from := startOfDay(f.FromDay, uc.tz)
	to := startOfDay(f.ToDay, uc.tz).AddDate(0, 0, 1)
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.LossFilter{
		TenantID:    scope.TenantID,
		LocationID:  strings.TrimSpace(f.LocationID),
		From:        from,
		To:          to,
		Search:      strings.TrimSpace(f.Search),
		PendingOnly: f.PendingOnly,
	}
	if strings.TrimSpace(f.Reason) != "" {
		reason, ok := entity.LookupLossReason(f.Reason)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Reason = reason
	}
	locName, err := uc.locationNames(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	if filter.LocationID != "" {
		if _, ok := locName[filter.LocationID]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	list, err := uc.repos.Losses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := newProductNames(uc.repos.Products)

	out := &LossReport{From: from, To: to, Total: stock.Zero()}
	byProduct := newLossSubtotals()
	byLocation := newLossSubtotals()
	for _, l := range list {
		code, name, err := names.get(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, LossReportRow{Loss: l, ProductCode: code, ProductName: name, LocationName: locName[l.LocationID]})
		out.Total = out.Total.Plus(l.Quantities())
		byProduct.add(l.ProductID, name, l.Quantities())
		byLocation.add(l.LocationID, locName[l.LocationID], l.Quantities())
	}
	out.ByProduct = byProduct.sorted()
	out.ByLocation = byLocation.sorted()
	return out, nil
}

func (uc *ReportUseCase) locationNames(ctx context.Context, tenantID string) (map[string]string, error) {
	locations, err := uc.repos.Locations.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.ID] = l.Name
	}
	return names, nil
}

type lossSubtotals map[string]*LossSubtotal

func newLossSubtotals() lossSubtotals { return lossSubtotals{} }

func (m lossSubtotals) add(id, name string, q stock.Quantities) {
	st, ok := m[id]
	if !ok {
		st = &LossSubtotal{ID: id, Name: name, Total: stock.Zero()}
		m[id] = st
	}
	st.Count++
	st.Total = st.Total.Plus(q)
}

func (m lossSubtotals) sorted() []LossSubtotal {
	out := make([]LossSubtotal, 0, len(m))
	for _, st := range m {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// productNames resuelve código/nombre de catálogo una vez por reporte.
type productNames struct {
	repo repository.ProductRepository
	seen map[string][2]string
}

func newProductNames(repo repository.ProductRepository) *productNames {
	return &productNames{repo: repo, seen: map[string][2]string{}}
}

func (n *productNames) get(ctx context.Context, id string) (code, name string, err error) {
	if v, ok := n.seen[id]; ok {
		return v[0], v[1], nil
	}
	p, err := n.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	if p != nil {
		code, name = p.Code, p.Name
	}
	n.seen[id] = [2]string{code, name}
	return code, name, nil
}
