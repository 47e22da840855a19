package metadata

const (
	// SchemaVersionKey 记录当前账本表结构的版本号。
	// 列表接口的游标格式与它一同演进，保持向后兼容。
	SchemaVersionKey = "schema_version"

	// WalletDefaultsProvisionedKey 标记钱包初始默认值是否已经写入。
	WalletDefaultsProvisionedKey = "wallet_defaults_provisioned"
)

// CurrentSchemaVersion 是本代码所对应的表结构版本。
const CurrentSchemaVersion = "1"
