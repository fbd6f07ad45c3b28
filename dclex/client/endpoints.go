package client

// Backend endpoint paths.
const (
	endpointNonce                   = "/users/nonce/"
	endpointVerify                  = "/users/verify/"
	endpointLogout                  = "/logout/"
	endpointVerificationStatus      = "/verification-status/"
	endpointPortfolio               = "/portfolio/"
	endpointStocks                  = "/stocks/"
	endpointStockPrices             = "/stocks-prices/"
	endpointPricesStreamAccessToken = "/prices-stream-access-token/"
	endpointPricesStream            = "/prices-stream/"
	endpointOpenOrders              = "/open-orders/"
	endpointClosedOrders            = "/closed-orders/"
	endpointLimitOrder              = "/orders/limit/"  // + buy|sell + /
	endpointMarketSellOrder         = "/orders/market/sell/"
	endpointOrders                  = "/orders/" // + id + /
	endpointPendingTransfers        = "/pending-transfers/"
	endpointClosedTransfers         = "/closed-transfers/"
	endpointDistributions           = "/distributions/"
	endpointClaimableWithdrawals    = "/claimable-withdrawals/"
	endpointInitUSDCWithdraw        = "/initialize-usdc-withdraw/"
	endpointInitStockWithdraw       = "/initialize-stocks-withdraw/"
	endpointWithdrawSignature       = "/withdraw-signature/" // + id + /
	endpointIdentitySignature       = "/digital-identity-signature/"
	endpointDepositStocksSignature  = "/deposit-stocks-signature/"
)

// Pagination defaults. The first page is 1; aggregation continues while
// page*size < total.
const (
	DefaultPage = 1

	// DefaultPageSize for order and transfer listings.
	DefaultPageSize = 100

	// DefaultDistributionsPageSize distributions arrive in bigger, rarer
	// batches.
	DefaultDistributionsPageSize = 1000

	// catalogueSize page size requested from the public stock catalogue and
	// price snapshot endpoints.
	catalogueSize = 100
)
