package sql

import "embed"

// Migrations holds the embedded schema files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_load_batch.sql
var RegisterLoadBatch string

//go:embed queries/select_members.sql
var SelectMembers string

//go:embed queries/select_claims.sql
var SelectClaims string

//go:embed queries/delete_batch.sql
var DeleteBatch string

//go:embed queries/latest_batch.sql
var LatestBatch string
