package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

func TestLambda_ColorFlow(t *testing.T) {
	rt, _ := testRouter(t)
	ctx := context.Background()

	res, err := rt.Lambda(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/color",
		Body:       `{"title":"Red","code":"#f00"}`,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])

	var c model.Color
	require.NoError(t, json.Unmarshal([]byte(res.Body), &c))

	body := base64.StdEncoding.EncodeToString([]byte(`{"id":"` + c.ID + `","code":"#e00"}`))
	res, err = rt.Lambda(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPut,
		Path:            "/color/" + c.ID,
		Resource:        "/color/{id}",
		PathParameters:  map[string]string{"id": c.ID},
		Body:            body,
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.Color
	require.NoError(t, json.Unmarshal([]byte(res.Body), &updated))
	assert.Equal(t, "Red", updated.Title)
	assert.Equal(t, "#e00", updated.Code)
}

func TestLambda_QueryParameters(t *testing.T) {
	rt, _ := testRouter(t)

	res, err := rt.Lambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/childTask",
		QueryStringParameters: map[string]string{"parentId": "t1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, res.Body)

	res, err = rt.Lambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/childTask",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLambda_OrderListPathParameter(t *testing.T) {
	rt, orderList := testRouter(t)
	_, err := orderList.SetOrder(context.Background(), "task#m1", []string{"a"})
	require.NoError(t, err)

	res, err := rt.Lambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/orderList/task%23m1",
		PathParameters: map[string]string{"listKey": "task%23m1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var lists []model.OrderList
	require.NoError(t, json.Unmarshal([]byte(res.Body), &lists))
	require.Len(t, lists, 1)
	assert.Equal(t, "task#m1", lists[0].ListKey)
}

func TestLambda_Errors(t *testing.T) {
	rt, _ := testRouter(t)

	res, err := rt.Lambda(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/nope"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	broken := NewRouter(zap.NewNop(), Route{Name: "tag", Param: "id", Handler: brokenHandler{}})
	_, err = broken.Lambda(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/tag"})
	assert.Error(t, err)
}
