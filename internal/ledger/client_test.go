package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/ledger/ledgertest"
	"github.com/resona/resona-api/internal/models"
)

type ClientTestSuite struct {
	suite.Suite
	server  *ledgertest.Server
	client  *Client
	ctx     context.Context
	session Session
}

func (suite *ClientTestSuite) SetupTest() {
	suite.server = ledgertest.NewServer()
	suite.ctx = context.Background()
	suite.session = Session{Principal: "artist-1", AppRole: models.AppRoleArtist, Token: "token-1"}
	suite.client = suite.newClient("reject")
	suite.Require().NoError(suite.client.Connect(suite.ctx))
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientTestSuite) newClient(policy string) *Client {
	c, err := NewClient(config.LedgerConfig{BaseURL: suite.server.URL, Timeout: 5, NumericPolicy: policy})
	suite.Require().NoError(err)
	return c
}

func (suite *ClientTestSuite) TestCallsFailFastBeforeConnect() {
	c := suite.newClient("reject")
	assert.Equal(suite.T(), StateDisconnected, c.State())

	_, err := c.GetProducts(suite.ctx, suite.session)
	assert.True(suite.T(), errors.Is(err, ErrUnavailable))
	assert.Equal(suite.T(), 0, suite.server.Calls("getProducts"))
}

func (suite *ClientTestSuite) TestConnectSetsState() {
	assert.Equal(suite.T(), StateConnected, suite.client.State())

	suite.server.SetDown(true)
	err := suite.client.Connect(suite.ctx)
	assert.True(suite.T(), errors.Is(err, ErrUnavailable))
	assert.Equal(suite.T(), StateUnavailable, suite.client.State())
}

func (suite *ClientTestSuite) TestGetProductsDecodes() {
	p := ledgertest.Product("p1", "artist-1", "Vinyl", "phygital")
	p["blockchain"] = ledgertest.Tag("icp")
	p["royaltyPercentage"] = "5"
	suite.server.Returns("getProducts", []interface{}{p})

	products, err := suite.client.GetProducts(suite.ctx, suite.session)
	suite.Require().NoError(err)
	suite.Require().Len(products, 1)

	got := products[0]
	assert.Equal(suite.T(), "p1", got.ID)
	assert.Equal(suite.T(), int64(2500), got.Price)
	assert.Equal(suite.T(), models.ProductTypePhygital, got.ProductType)
	suite.Require().NotNil(got.Blockchain)
	assert.Equal(suite.T(), models.BlockchainICP, *got.Blockchain)
	suite.Require().NotNil(got.RoyaltyPercentage)
	assert.Equal(suite.T(), int64(5), *got.RoyaltyPercentage)
	assert.Equal(suite.T(), []string{"https://cdn.example/p1.png"}, got.Images)
	assert.Equal(suite.T(), "token-1", suite.server.LastToken("getProducts"))
}

func (suite *ClientTestSuite) TestOverflowRejected() {
	p := ledgertest.Product("p1", "artist-1", "Vinyl", "physical")
	p["price"] = "99999999999999999999999"
	suite.server.Returns("getProducts", []interface{}{p})

	_, err := suite.client.GetProducts(suite.ctx, suite.session)
	assert.True(suite.T(), errors.Is(err, ErrNumericOverflow))
}

func (suite *ClientTestSuite) TestOverflowSaturated() {
	c := suite.newClient("saturate")
	suite.Require().NoError(c.Connect(suite.ctx))

	p := ledgertest.Product("p1", "artist-1", "Vinyl", "physical")
	p["price"] = "99999999999999999999999"
	suite.server.Returns("getProducts", []interface{}{p})

	products, err := c.GetProducts(suite.ctx, suite.session)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(math.MaxInt64), products[0].Price)
}

func (suite *ClientTestSuite) TestUnknownVariantRejected() {
	suite.server.Returns("getOrders", []interface{}{ledgertest.Order("o1", "p1", "returned", 1)})

	_, err := suite.client.GetOrders(suite.ctx, suite.session)
	assert.True(suite.T(), errors.Is(err, ErrUnknownVariant))
}

func (suite *ClientTestSuite) TestRemoteRejection() {
	suite.server.Rejects("approveHub", "Hub is not pending approval")

	err := suite.client.ApproveHub(suite.ctx, suite.session, "h1")
	var remote *RemoteError
	suite.Require().True(errors.As(err, &remote))
	assert.Equal(suite.T(), "Hub is not pending approval", remote.Error())
	assert.Equal(suite.T(), StateConnected, suite.client.State())
}

func (suite *ClientTestSuite) TestRemoteRejectionWithoutMessage() {
	suite.server.Rejects("deleteHub", "")

	err := suite.client.DeleteHub(suite.ctx, suite.session, "h1")
	assert.True(suite.T(), IsRemote(err))
	assert.Equal(suite.T(), GenericFailureMessage, err.Error())
}

func (suite *ClientTestSuite) TestGatewayDownMarksUnavailable() {
	suite.server.SetDown(true)

	_, err := suite.client.GetHubs(suite.ctx, suite.session)
	assert.True(suite.T(), IsUnavailable(err))
	assert.Equal(suite.T(), StateUnavailable, suite.client.State())
}

func (suite *ClientTestSuite) TestUpdateOrderStatusSendsTaggedStatus() {
	suite.server.Returns("updateOrderStatus", nil)

	err := suite.client.UpdateOrderStatus(suite.ctx, suite.session, "o1", models.OrderStatusShipped)
	suite.Require().NoError(err)

	args := suite.server.LastArgs("updateOrderStatus")
	suite.Require().Len(args, 2)
	assert.JSONEq(suite.T(), `"o1"`, string(args[0]))
	assert.JSONEq(suite.T(), `{"_tag":"shipped"}`, string(args[1]))
}

func (suite *ClientTestSuite) TestFilteredOrdersEncodesFilter() {
	suite.server.Returns("getFilteredArtistOrders", []interface{}{})

	status := models.OrderStatusShipped
	start := int64(1700000000000000000)
	_, err := suite.client.GetFilteredArtistOrders(suite.ctx, suite.session, "artist-1", models.OrderFilter{Status: &status, StartDate: &start})
	suite.Require().NoError(err)

	args := suite.server.LastArgs("getFilteredArtistOrders")
	suite.Require().Len(args, 2)
	var filter map[string]interface{}
	suite.Require().NoError(json.Unmarshal(args[1], &filter))
	assert.Equal(suite.T(), map[string]interface{}{"_tag": "shipped"}, filter["status"])
	assert.Equal(suite.T(), "1700000000000000000", filter["startDate"])
	assert.NotContains(suite.T(), filter, "endDate")
}

func (suite *ClientTestSuite) TestOptionalResults() {
	suite.server.Returns("getCallerUserProfile", nil)
	profile, err := suite.client.GetCallerUserProfile(suite.ctx, suite.session)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), profile)

	suite.server.Returns("getOrderDetails", nil)
	_, err = suite.client.GetOrderDetails(suite.ctx, suite.session, "missing")
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *ClientTestSuite) TestHubActivityValue() {
	suite.server.Returns("getRecentHubActivity", []interface{}{
		map[string]interface{}{
			"hubId":        "h1",
			"activityType": map[string]interface{}{"_tag": "unitsShipped", "value": "12"},
			"timestamp":    "1700000000000000000",
		},
		map[string]interface{}{
			"hubId":        "h1",
			"activityType": ledgertest.Tag("lowStockAlert"),
			"timestamp":    "1700000000000000001",
		},
	})

	activity, err := suite.client.GetRecentHubActivity(suite.ctx, suite.session, "h1")
	suite.Require().NoError(err)
	suite.Require().Len(activity, 2)
	suite.Require().NotNil(activity[0].Value)
	assert.Equal(suite.T(), int64(12), *activity[0].Value)
	assert.Equal(suite.T(), models.HubActivityLowStockAlert, activity[1].ActivityType)
	assert.Nil(suite.T(), activity[1].Value)
}

func (suite *ClientTestSuite) TestBulkRestockSendsPairs() {
	suite.server.Returns("bulkRestockInventory", nil)

	err := suite.client.BulkRestockInventory(suite.ctx, suite.session, []models.RestockEntry{
		{InventoryID: "p1-h1", Quantity: 5},
		{InventoryID: "p2-h1", Quantity: 7},
	})
	suite.Require().NoError(err)
	assert.JSONEq(suite.T(), `[["p1-h1","5"],["p2-h1","7"]]`, string(suite.server.LastArgs("bulkRestockInventory")[0]))
}

func (suite *ClientTestSuite) TestAnonymousSessionSendsNoToken() {
	suite.server.Returns("getHubs", []interface{}{})

	_, err := suite.client.GetHubs(suite.ctx, Session{})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "", suite.server.LastToken("getHubs"))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestConnectionStateStrings(t *testing.T) {
	for _, s := range []ConnectionState{StateDisconnected, StateConnecting, StateConnected, StateUnavailable} {
		assert.NotEqual(t, "unknown", s.String())
	}
	text, err := StateConnected.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "connected", string(text))
}
