package redis_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	redisadapter "brokerage/internal/adapters/out/redis"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *goredis.Client
	publisher *redisadapter.Publisher
}

func (suite *PublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	rdb, err := redisadapter.Connect(ctx, fmt.Sprintf("redis://%s/0", endpoint))
	suite.Require().NoError(err)
	suite.rdb = rdb
	suite.publisher = redisadapter.NewPublisher(rdb, time.Second)
}

func (suite *PublisherIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		suite.Require().NoError(suite.rdb.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherIntegrationTestSuite) TestPublish_RequestAndFirehoseChannels() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	requestID := kernel.NewUUID()
	sub := suite.rdb.Subscribe(ctx, redisadapter.RequestChannel(requestID), redisadapter.AllChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)

	events := []request.Event{
		{Kind: request.EventOfferSelected, RequestID: requestID, SubjectID: "offer-1", At: time.Now().UTC()},
		{Kind: request.EventCommercialChanged, RequestID: requestID, From: "Pending", To: "Accepted", At: time.Now().UTC()},
	}
	suite.Require().NoError(suite.publisher.Publish(ctx, events))

	byChannel := map[string][]request.EventKind{}
	for range 2 * len(events) {
		msg, err := sub.ReceiveMessage(ctx)
		suite.Require().NoError(err)

		var ev request.Event
		suite.Require().NoError(json.Unmarshal([]byte(msg.Payload), &ev))
		suite.True(requestID.IsEqual(ev.RequestID))
		byChannel[msg.Channel] = append(byChannel[msg.Channel], ev.Kind)
	}

	want := []request.EventKind{request.EventOfferSelected, request.EventCommercialChanged}
	suite.Equal(want, byChannel[redisadapter.RequestChannel(requestID)])
	suite.Equal(want, byChannel[redisadapter.AllChannel])
}

func (suite *PublisherIntegrationTestSuite) TestPublish_NothingToSend() {
	suite.Require().NoError(suite.publisher.Publish(context.Background(), nil))
}

func TestPublisherIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PublisherIntegrationTestSuite))
}
