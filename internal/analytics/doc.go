// Package analytics holds the pure aggregation functions behind the admin
// dashboard: month-over-month change, category shares, month-bucketed
// series and the demographic and revenue breakdowns used by the pie charts.
//
// Two behaviors are kept for compatibility with existing dashboards:
// CategoryDistribution rounds the ratio before scaling it to a percentage,
// and HistoricalData compares calendar months without looking at the year.
package analytics
