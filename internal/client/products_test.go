package client

import (
	"net"
	"testing"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/session"
	"go-inventory-client/internal/view"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	c := startServer(t).loggedIn(t)

	fields := newFields("Cordless Drill", "DRL-100", 12, "89.90", "Power Tools")
	fields.Description = "18V"
	created, err := c.Products.CreateProduct(fields)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, adminEmail, created.CreatedBy)

	got, err := c.Products.GetProductByID(created.ID.String())
	require.NoError(t, err)
	assertSameFields(t, fields, got)

	fields.Quantity = 4
	updated, err := c.Products.UpdateProduct(created.ID.String(), fields)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, c.Products.DeleteProduct(created.ID.String()))
	_, err = c.Products.GetProductByID(created.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Products.DeleteProduct(created.ID.String()), ErrNotFound)
}

func TestProductErrors(t *testing.T) {
	c := startServer(t).loggedIn(t)

	_, err := c.Products.GetProductByID("")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Products.GetProductByID("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Products.CreateProduct(newFields("", "X-1", 1, "1", ""))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Products.CreateProduct(newFields("A", "DUP-1", 1, "1", ""))
	require.NoError(t, err)
	_, err = c.Products.CreateProduct(newFields("B", "dup-1", 1, "1", ""))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "SKU already exists")
}

func TestQueriesAgreeWithLocalFilters(t *testing.T) {
	c := startServer(t).loggedIn(t)
	for _, f := range []*model.ProductFields{
		newFields("Blue Widget", "WID-001", 3, "2.50", "Parts"),
		newFields("Gadget", "GAD-widget", 10, "7", "Parts"),
		newFields("50% Off Sprocket", "SPR_9", 9, "1.25", ""),
		newFields("Hammer", "HAM-1", 100, "25", "Power Tools"),
		newFields("Drill", "DRL-1", 2, "90", "Power Tools"),
	} {
		_, err := c.Products.CreateProduct(f)
		require.NoError(t, err)
	}

	all, err := c.Products.GetProducts()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Drill", all[0].Name, "newest first")

	for _, kw := range []string{"widget", "WID", "50%", "_9", "zzz"} {
		found, err := c.Products.SearchProducts(kw)
		require.NoError(t, err)
		assert.Equal(t, ids(model.FilterProducts(all, kw)), ids(found), kw)
	}

	low, err := c.Products.GetLowStockProducts()
	require.NoError(t, err)
	assert.Equal(t, ids(model.FilterLowStock(all)), ids(low))

	tools, err := c.Products.GetProductsByCategory("Power Tools")
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "Drill", tools[0].Name, "price descending")

	stats, err := c.Products.GetStats()
	require.NoError(t, err)
	local := model.Summarize(all)
	assert.Equal(t, local.Total, stats.Total)
	assert.Equal(t, local.LowStock, stats.LowStock)
	assert.Equal(t, local.Categories, stats.Categories)
	assert.True(t, local.Value.Equal(stats.Value), "%s != %s", local.Value, stats.Value)
}

func TestCategoryWithReservedCharacters(t *testing.T) {
	c := startServer(t).loggedIn(t)
	for _, f := range []*model.ProductFields{
		newFields("Speaker", "SPK-1", 4, "120", "Audio/Video"),
		newFields("Cable", "CBL-1", 40, "8", "Audio"),
		newFields("Lamp", "LMP-1", 7, "15", "Home & Garden?"),
	} {
		_, err := c.Products.CreateProduct(f)
		require.NoError(t, err)
	}

	for category, want := range map[string]string{
		"Audio/Video":    "Speaker",
		"Audio":          "Cable",
		"Home & Garden?": "Lamp",
	} {
		found, err := c.Products.GetProductsByCategory(category)
		require.NoError(t, err, category)
		require.Len(t, found, 1, category)
		assert.Equal(t, want, found[0].Name)
	}
}

func TestDashboardTracksMutations(t *testing.T) {
	c := startServer(t).loggedIn(t)
	dash := view.NewDashboard(c.Products)

	// check refreshes the dashboard and compares it with the catalogue and the server.
	check := func(step string) {
		t.Helper()
		require.NoError(t, dash.Refresh(), step)
		all, err := c.Products.GetProducts()
		require.NoError(t, err, step)
		server, err := c.Products.GetStats()
		require.NoError(t, err, step)

		local := model.Summarize(all)
		got := dash.Stats()
		assert.Equal(t, local.Total, got.Total, step)
		assert.Equal(t, local.LowStock, got.LowStock, step)
		assert.True(t, local.Value.Equal(got.Value), "%s: %s != %s", step, local.Value, got.Value)
		assert.True(t, server.Value.Equal(got.Value), "%s: server %s != %s", step, server.Value, got.Value)
	}

	check("empty")
	assert.True(t, dash.Stats().Value.IsZero())

	drill, err := c.Products.CreateProduct(newFields("Drill", "DRL-1", 2, "89.90", "Tools"))
	require.NoError(t, err)
	saw, err := c.Products.CreateProduct(newFields("Saw", "SAW-1", 15, "24.99", "Tools"))
	require.NoError(t, err)
	check("create")
	assert.Equal(t, "554.65", dash.Stats().Value.StringFixed(2))

	fields := drill.Fields()
	fields.Quantity = 20
	_, err = c.Products.UpdateProduct(drill.ID.String(), &fields)
	require.NoError(t, err)
	check("update quantity")
	assert.Equal(t, "2172.85", dash.Stats().Value.StringFixed(2))

	fields.Price = decimal.RequireFromString("0.10")
	_, err = c.Products.UpdateProduct(drill.ID.String(), &fields)
	require.NoError(t, err)
	check("update price")
	assert.Equal(t, "376.85", dash.Stats().Value.StringFixed(2))

	require.NoError(t, c.Products.DeleteProduct(saw.ID.String()))
	check("delete")
	assert.Equal(t, "2.00", dash.Stats().Value.StringFixed(2))
}

func TestConnectivityError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := New(Config{BaseURL: "http://" + addr + "/api"}, session.NewProvider(session.NewMemoryStore(), nil))
	_, err = c.Products.GetProducts()
	require.ErrorIs(t, err, ErrConnectivity)
	assert.Equal(t, connectivityMessage, err.Error())

	_, err = c.Auth.Login(adminEmail, adminPassword)
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.Nil(t, c.Auth.CurrentUser())
}

// assertSameFields compares prices by value since 89.90 comes back as 89.9.
func assertSameFields(t *testing.T, want *model.ProductFields, got *model.Product) {
	t.Helper()
	gotFields := got.Fields()
	assert.True(t, want.Price.Equal(gotFields.Price), "price %s != %s", want.Price, gotFields.Price)

	w := *want
	w.Price, gotFields.Price = decimal.Zero, decimal.Zero
	assert.Equal(t, w, gotFields)
}

func ids(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID.String())
	}
	return out
}
