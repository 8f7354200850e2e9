package warehouse

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

// BigQueryEngine executes registry statements against BigQuery. The catalog
// maps to a GCP project and the area to a dataset. BigQuery has no suspend
// or target-lag primitive for CTAS tables, so both capabilities are off and
// the manager degrades accordingly.
type BigQueryEngine struct {
	client  *bigquery.Client
	project string
	dataset string
}

func NewBigQueryEngine(ctx context.Context, project, dataset string) (*BigQueryEngine, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}
	return &BigQueryEngine{
		client:  client,
		project: project,
		dataset: dataset,
	}, nil
}

func (e *BigQueryEngine) Run(ctx context.Context, stmt string) error {
	q := e.client.Query(stmt)
	q.DefaultProjectID = e.project
	q.DefaultDatasetID = e.dataset

	job, err := q.Run(ctx)
	if err != nil {
		return newExecutionError(stmt, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return newExecutionError(stmt, err)
	}
	if err := status.Err(); err != nil {
		return newExecutionError(stmt, err)
	}
	return nil
}

func (e *BigQueryEngine) Query(ctx context.Context, stmt string) ([]map[string]interface{}, error) {
	q := e.client.Query(stmt)
	q.DefaultProjectID = e.project
	q.DefaultDatasetID = e.dataset

	itr, err := q.Read(ctx)
	if err != nil {
		return nil, newExecutionError(stmt, err)
	}

	var rows []map[string]interface{}
	for {
		var values map[string]bigquery.Value
		err := itr.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, newExecutionError(stmt, err)
		}
		row := make(map[string]interface{}, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SetNamespace repoints the engine at another (project, dataset) pair. A new
// client is only opened when the project changes.
func (e *BigQueryEngine) SetNamespace(ctx context.Context, catalog, area string) error {
	if catalog != e.project {
		client, err := bigquery.NewClient(ctx, catalog)
		if err != nil {
			return fmt.Errorf("failed to switch BigQuery project: %w", err)
		}
		e.client.Close()
		e.client = client
		e.project = catalog
	}
	e.dataset = area
	return nil
}

func (e *BigQueryEngine) TableExists(ctx context.Context, table string) (bool, error) {
	_, err := e.client.Dataset(e.dataset).Table(table).Metadata(ctx)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return false, nil
		}
		return false, newExecutionError("table metadata lookup: "+table, err)
	}
	return true, nil
}

func (e *BigQueryEngine) SupportsSuspend() bool {
	return false
}

func (e *BigQueryEngine) SupportsRefreshPolicy() bool {
	return false
}

func (e *BigQueryEngine) Close() error {
	return e.client.Close()
}
