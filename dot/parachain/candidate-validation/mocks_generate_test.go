// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

//go:generate mockgen -destination=mocks_test.go -package=$GOPACKAGE . BlockState,ValidationBackend
//go:generate mockgen -destination=mock_runtime_instance_test.go -package $GOPACKAGE github.com/ChainSafe/candidate-validation/dot/parachain/runtime RuntimeInstance
