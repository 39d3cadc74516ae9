// Package recordstore implements the repositories over a hosted record store reached through its REST API.
// Tables and fields follow the store's naming: custom tables and fields carry a "_c" suffix,
// relations come back either as a bare id or as a {"Id", "Name"} lookup object.
package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/studysync/core"
)

const (
	pageLimit = 200

	headerProjectID = "X-Project-Id"
	headerPublicKey = "X-Public-Key"
)

type (
	// Client performs record operations against one project of the record store.
	Client struct {
		baseURL   string
		projectID string
		publicKey string
		http      *rest.Client
	}

	fieldRef struct {
		Field struct {
			Name string `json:"Name"`
		} `json:"field"`
	}

	condition struct {
		FieldName string        `json:"FieldName"`
		Operator  string        `json:"Operator"`
		Values    []interface{} `json:"Values"`
	}

	ordering struct {
		FieldName string `json:"fieldName"`
		SortType  string `json:"sorttype"`
	}

	paging struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}

	fetchParams struct {
		Fields     []fieldRef  `json:"fields"`
		Where      []condition `json:"where,omitempty"`
		OrderBy    []ordering  `json:"orderBy,omitempty"`
		PagingInfo paging      `json:"pagingInfo"`
	}

	result struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}

	envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Results []result        `json:"results"`
	}
)

func NewClient(conf core.RecordStoreConfig) *Client {
	return &Client{
		baseURL:   conf.BaseURL,
		projectID: conf.ProjectID,
		publicKey: conf.PublicKey,
		http:      &rest.Client{HTTPClient: &http.Client{Timeout: conf.Timeout}},
	}
}

func fields(names ...string) []fieldRef {
	refs := make([]fieldRef, len(names))
	for i, name := range names {
		refs[i].Field.Name = name
	}
	return refs
}

func (c *Client) tableURL(table string, id ...int) string {
	u := c.baseURL + "/api/v1/projects/" + c.projectID + "/tables/" + table + "/records"
	if len(id) > 0 {
		u += "/" + strconv.Itoa(id[0])
	}
	return u
}

// send performs a request, decodes the response envelope and maps a 404 onto notFound.
func (c *Client) send(ctx context.Context, method rest.Method, url string, body interface{}, notFound error) (envelope, error) {
	req := rest.Request{
		Method:  method,
		BaseURL: url,
		Headers: map[string]string{
			"Accept":        "application/json",
			"Content-Type":  "application/json",
			headerProjectID: c.projectID,
			headerPublicKey: c.publicKey,
		},
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, errors.Wrap(err, "encoding request")
		}
		req.Body = raw
	}

	resp, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		return envelope{}, errors.Wrap(err, "calling record store")
	}
	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return envelope{}, notFound
	}

	var env envelope
	if resp.Body != "" {
		if err = json.Unmarshal([]byte(resp.Body), &env); err != nil {
			return envelope{}, errors.Wrapf(err, "decoding record store response (status %d)", resp.StatusCode)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return envelope{}, errors.Errorf("record store: %s", msg)
	}
	for _, r := range env.Results {
		if !r.Success {
			return envelope{}, errors.Errorf("record store: %s", r.Message)
		}
	}
	return env, nil
}

// fetch lists the records of table matching where, in ascending id order.
func (c *Client) fetch(ctx context.Context, table string, names []string, dest interface{}, where ...condition) error {
	params := fetchParams{
		Fields:     fields(names...),
		Where:      where,
		OrderBy:    []ordering{{FieldName: "Id", SortType: "ASC"}},
		PagingInfo: paging{Limit: pageLimit},
	}
	env, err := c.send(ctx, rest.Post, c.tableURL(table)+"/query", params, nil)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", table)
	}
	return decodeData(env.Data, dest)
}

func (c *Client) get(ctx context.Context, table string, id int, dest interface{}, notFound error) error {
	env, err := c.send(ctx, rest.Get, c.tableURL(table, id), nil, notFound)
	if err != nil {
		return err
	}
	if isNull(env.Data) {
		return notFound
	}
	return decodeData(env.Data, dest)
}

// write creates (POST) or updates (PUT) one record and decodes the stored record into dest.
func (c *Client) write(ctx context.Context, method rest.Method, table string, record, dest interface{}, notFound error) error {
	body := map[string]interface{}{"records": []interface{}{record}}
	env, err := c.send(ctx, method, c.tableURL(table), body, notFound)
	if err != nil {
		return err
	}
	if len(env.Results) == 0 || isNull(env.Results[0].Data) {
		return errors.Errorf("record store: no record returned for %s", table)
	}
	return decodeData(env.Results[0].Data, dest)
}

func (c *Client) delete(ctx context.Context, table string, notFound error, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]interface{}{"RecordIds": ids}
	_, err := c.send(ctx, rest.Delete, c.tableURL(table), body, notFound)
	return err
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeData(raw json.RawMessage, dest interface{}) error {
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "decoding records")
	}
	return nil
}

func courseIs(courseID int) condition {
	return condition{FieldName: "course_id_c", Operator: "EqualTo", Values: []interface{}{courseID}}
}

func assignmentIs(assignmentID int) condition {
	return condition{FieldName: "assignment_id_c", Operator: "EqualTo", Values: []interface{}{assignmentID}}
}

// today is the default date of records missing one.
var today = func() core.Date { return core.DateOf(time.Now()) } // mockable
