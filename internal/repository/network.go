package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/bloodbank"
	"github.com/UnknownOlympus/hermes/internal/graph"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// LoadRoadNetwork streams every road node and edge into builder. Edge attributes are the non-null
// columns among length and weight; the builder decides which one is the weight.
func (r *Repository) LoadRoadNetwork(ctx context.Context, builder *graph.Builder) error {
	nodeQuery := `
		SELECT node_id, latitude, longitude
		FROM public.road_nodes;
	`

	rows, err := r.db.Query(ctx, nodeQuery)
	if err != nil {
		return fmt.Errorf("failed to query road nodes: %w", err)
	}
	defer rows.Close()

	nodes := 0
	for rows.Next() {
		var (
			nodeID int64
			coords models.Coordinates
		)
		if errScan := rows.Scan(&nodeID, &coords.Latitude, &coords.Longitude); errScan != nil {
			return fmt.Errorf("failed to scan road node: %w", errScan)
		}
		if errAdd := builder.AddNode(nodeID, coords); errAdd != nil {
			return fmt.Errorf("failed to load road node: %w", errAdd)
		}
		nodes++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read road node row: %w", err)
	}

	edges, err := r.loadRoadEdges(ctx, builder)
	if err != nil {
		return err
	}

	r.log.InfoContext(ctx, "Road network loaded", "nodes", nodes, "edges", edges)

	return nil
}

func (r *Repository) loadRoadEdges(ctx context.Context, builder *graph.Builder) (int, error) {
	edgeQuery := `
		SELECT source, target, length, weight
		FROM public.road_edges
		ORDER BY edge_id ASC;
	`

	rows, err := r.db.Query(ctx, edgeQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to query road edges: %w", err)
	}
	defer rows.Close()

	edges := 0
	for rows.Next() {
		var (
			source, target int64
			length, weight pgtype.Float8
		)
		if errScan := rows.Scan(&source, &target, &length, &weight); errScan != nil {
			return 0, fmt.Errorf("failed to scan road edge: %w", errScan)
		}

		attrs := make(map[string]float64, 2)
		if length.Valid {
			attrs["length"] = length.Float64
		}
		if weight.Valid {
			attrs["weight"] = weight.Float64
		}
		if errAdd := builder.AddEdge(source, target, attrs); errAdd != nil {
			return 0, fmt.Errorf("failed to load road edge: %w", errAdd)
		}
		edges++
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read road edge row: %w", err)
	}

	return edges, nil
}

// FetchFacilities returns every blood center with its stock. Centers without stock rows are
// returned with an empty stock.
func (r *Repository) FetchFacilities(ctx context.Context) ([]bloodbank.Facility, error) {
	query := `
		SELECT c.node_id, c.name, s.blood_type, s.units
		FROM public.blood_centers c
		LEFT JOIN public.blood_stock s ON s.node_id = c.node_id
		ORDER BY c.node_id ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blood centers: %w", err)
	}
	defer rows.Close()

	var facilities []bloodbank.Facility
	for rows.Next() {
		var (
			nodeID    int64
			name      string
			bloodType pgtype.Text
			units     pgtype.Int4
		)
		if errScan := rows.Scan(&nodeID, &name, &bloodType, &units); errScan != nil {
			return nil, fmt.Errorf("failed to scan blood center: %w", errScan)
		}

		if len(facilities) == 0 || facilities[len(facilities)-1].NodeID != nodeID {
			facilities = append(facilities, bloodbank.Facility{
				NodeID: nodeID,
				Name:   name,
				Stock:  make(bloodbank.Stock),
			})
		}
		if !bloodType.Valid {
			continue
		}

		parsed, errParse := bloodbank.ParseBloodType(bloodType.String)
		if errParse != nil {
			r.log.WarnContext(ctx, "Skipping stock row with unknown blood type",
				"node", nodeID, "blood_type", bloodType.String)
			continue
		}
		facilities[len(facilities)-1].Stock[parsed] = int(units.Int32)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return facilities, nil
}
