package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Balances     BalanceRepository
	Locations    LocationRepository
	Products     ProductRepository
	Foods        FoodRepository
	Receipts     ReceiptRepository
	Transfers    TransferRepository
	Counts       CountRepository
	Losses       LossRepository
	Requisitions RequisitionRepository
	Events       EventRepository
}
