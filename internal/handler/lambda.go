package handler

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Lambda serves API Gateway proxy events. Store failures are returned to the
// runtime, which answers with a 5xx.
func (rt *Router) Lambda(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	route, params, ok := rt.Resolve(ev.Path)
	if !ok {
		res := messageResponse(http.StatusNotFound, "Not Found")
		return events.APIGatewayProxyResponse{StatusCode: res.Status, Headers: res.Headers, Body: res.Body}, nil
	}
	for k, v := range ev.PathParameters {
		if k == route.Param && v != "" {
			params[k] = unescape(v)
		}
	}

	body := ev.Body
	if ev.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			res := textResponse(http.StatusBadRequest, "Invalid request: bad base64 body")
			return events.APIGatewayProxyResponse{StatusCode: res.Status, Headers: res.Headers, Body: res.Body}, nil
		}
		body = string(b)
	}

	query := ev.QueryStringParameters
	if query == nil {
		query = map[string]string{}
	}

	res, err := route.Handler.Handle(ctx, Request{
		Method:     ev.HTTPMethod,
		PathParams: params,
		Query:      query,
		Body:       body,
	})
	if err != nil {
		rt.logger.Error("internal error",
			zap.String("resource", route.Name),
			zap.String("request_id", ev.RequestContext.RequestID),
			zap.Error(err),
		)
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: res.Status,
		Headers:    res.Headers,
		Body:       res.Body,
	}, nil
}
