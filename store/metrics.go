// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import "github.com/dengjinhmm/v-systems/metrics"

var (
	metricCommitCount     = metrics.LazyLoadCounter("state_store_commit_count")
	metricCommitDuration  = metrics.LazyLoadHistogram("state_store_commit_duration_ms", metrics.Bucket10s)
	metricCompactionCount = metrics.LazyLoadCounter("state_store_compaction_count")
	metricBalanceChanges  = metrics.LazyLoadCounter("state_store_applied_balance_changes")
	metricAppliedTxs      = metrics.LazyLoadCounter("state_store_applied_txs")
)
