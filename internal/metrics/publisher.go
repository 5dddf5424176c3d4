package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/ishanichuri/portfolio/internal/logging"
)

// ViewPublisher records one website view.
type ViewPublisher interface {
	RecordView(ctx context.Context, page, source string) error
}

// putMetricAPI is the part of *cloudwatch.Client the publisher calls.
type putMetricAPI interface {
	PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type CloudWatchOptions struct {
	Namespace   string
	MetricName  string
	Environment string
}

// CloudWatchPublisher writes a Count datapoint per view. Calls go through a
// circuit breaker so a failing CloudWatch does not slow the view endpoint.
type CloudWatchPublisher struct {
	api putMetricAPI
	opt CloudWatchOptions
	cb  *gobreaker.CircuitBreaker
}

func NewCloudWatchPublisher(api putMetricAPI, opt CloudWatchOptions) *CloudWatchPublisher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cloudwatch-views",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.FromContext(context.Background()).WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
	return &CloudWatchPublisher{api: api, opt: opt, cb: cb}
}

func (p *CloudWatchPublisher) RecordView(ctx context.Context, _ string, source string) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return p.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace: aws.String(p.opt.Namespace),
			MetricData: []types.MetricDatum{{
				MetricName: aws.String(p.opt.MetricName),
				Dimensions: []types.Dimension{
					{Name: aws.String("Environment"), Value: aws.String(p.opt.Environment)},
					{Name: aws.String("Source"), Value: aws.String(source)},
				},
				Value: aws.Float64(1),
				Unit:  types.StandardUnitCount,
			}},
		})
	})
	return err
}

// BreakerOpen reports whether err came from an open or saturated breaker.
func BreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
